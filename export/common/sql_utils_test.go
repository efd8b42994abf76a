package common

import (
	"strings"
	"testing"
)

func TestGenCompliantNames(t *testing.T) {
	rawnames := []string{"Order Date", "Amount (USD)", "Raw Content", ""}
	expected := []string{"order_date", "amount_usd", "raw_content", "cl3"}
	clean := GenCompliantNames(rawnames, "cl")
	t.Logf("Input: %v", rawnames)
	t.Logf("Output: %v", clean)
	for i, v := range clean {
		if v != expected[i] {
			t.Errorf("at index %d: got %s, want %s", i, v, expected[i])
		}
	}
}

func TestGenCompliantNamesDigits(t *testing.T) {
	rawnames := []string{"4658.25", "123", "abc"}
	// idx 0: "4658.25" -> "465825" -> starts with digit -> prefix "cl" + idx 0 + "465825" -> "cl0465825"
	// idx 1: "123" -> "123" -> starts with digit -> prefix "cl" + idx 1 + "123" -> "cl1123"
	// idx 2: "abc" -> "abc"
	expected := []string{"cl0465825", "cl1123", "abc"}
	clean := GenCompliantNames(rawnames, "cl")
	for i, v := range clean {
		if v != expected[i] {
			t.Errorf("at index %d: got %s, want %s", i, v, expected[i])
		}
	}
}

func TestGenCompliantNamesKeywords(t *testing.T) {
	rawnames := []string{"group", "order", "abc"}
	expected := []string{"cl0", "cl1", "abc"}
	clean := GenCompliantNames(rawnames, "cl")
	for i, v := range clean {
		if v != expected[i] {
			t.Errorf("at index %d: got %s, want %s", i, v, expected[i])
		}
	}
}

func TestGenCompliantNamesDuplicates(t *testing.T) {
	rawnames := []string{"name", "Name", "NAME"}
	expected := []string{"name", "name2", "name3"}
	clean := GenCompliantNames(rawnames, "cl")
	for i, v := range clean {
		if v != expected[i] {
			t.Errorf("at index %d: got %s, want %s", i, v, expected[i])
		}
	}
}

func TestGenTableNames(t *testing.T) {
	rawnames := []string{"Orders 2011", "&*^%$"}
	expected := []string{"orders_2011", "tb1"}
	clean := GenTableNames(rawnames)
	for i, v := range clean {
		if v != expected[i] {
			t.Errorf("at index %d: got %s, want %s", i, v, expected[i])
		}
	}
}

func TestGenInsertStmt(t *testing.T) {
	stmt, err := GenInsertStmt("tb0", []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("GenInsertStmt failed: %v", err)
	}
	if !strings.HasPrefix(stmt, "INSERT INTO tb0") {
		t.Errorf("unexpected statement prefix: %s", stmt)
	}
	if strings.Count(stmt, "?") != 3 {
		t.Errorf("expected 3 placeholders, got: %s", stmt)
	}

	if _, err := GenInsertStmt("", []string{"a"}); err == nil {
		t.Error("expected error for empty table name")
	}
	if _, err := GenInsertStmt("tb0", nil); err == nil {
		t.Error("expected error for empty field list")
	}
}

func TestGenCreateTableSQL(t *testing.T) {
	got := GenCreateTableSQL("tb0", []string{"a", "b"})
	want := "CREATE TABLE tb0 (a TEXT, b TEXT)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
