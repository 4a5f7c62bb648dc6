package products

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// newAPI starts a fake API and points the CLI at it with a fresh home directory.
func newAPI(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("INVENTORY_API_URL", srv.URL)
	t.Setenv("HOME", t.TempDir())
	return srv
}

func saveToken(t *testing.T, token string) {
	t.Helper()
	home, _ := os.UserHomeDir()
	if err := os.WriteFile(filepath.Join(home, ".inventory_token"), []byte(token), 0o600); err != nil {
		t.Fatalf("write token: %v", err)
	}
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const listBody = `{"success":true,"count":2,"data":[
	{"id":"p-1","name":"Widget","price":9.99,"quantity":0,"owner":{"id":"u-1","username":"alice"}},
	{"id":"p-2","name":"Gadget","price":1.5,"quantity":4,"owner":{"id":"u-2","username":"bob"}}]}`

func TestListProducts_TableOutput(t *testing.T) {
	newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("public list should not send a token")
		}
		io.WriteString(w, listBody)
	})

	out, err := run(t, listProductsCmd())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"Widget", "Gadget", "alice", "9.99", "2 product(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got: %s", want, out)
		}
	}
}

func TestListProducts_MineJSON(t *testing.T) {
	newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products/user/me" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization: got %q", got)
		}
		io.WriteString(w, `{"success":true,"count":1,"data":[{"id":"p-1","name":"Widget","price":9.99,"owner":{"id":"u-1"}}]}`)
	})
	saveToken(t, "tok-123")

	out, err := run(t, listProductsCmd(), "--mine", "--json")
	if err != nil {
		t.Fatalf("list --mine: %v", err)
	}
	if !strings.Contains(out, `"name": "Widget"`) {
		t.Fatalf("expected JSON output, got: %s", out)
	}
}

func TestListProducts_MineRequiresLogin(t *testing.T) {
	newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without a token")
	})

	if _, err := run(t, listProductsCmd(), "--mine"); err == nil || !strings.Contains(err.Error(), "not logged in") {
		t.Errorf("expected not-logged-in error, got %v", err)
	}
}

func TestUpdateProduct_SendsOnlyChangedFields(t *testing.T) {
	var got map[string]any
	newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/products/p-1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		io.WriteString(w, `{"success":true,"message":"Product updated successfully","data":{"id":"p-1","name":"Widget","price":0,"quantity":2,"owner":{"id":"u-1"}}}`)
	})
	saveToken(t, "tok")

	out, err := run(t, updateProductCmd(), "p-1", "--price", "0", "--quantity", "2")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(got) != 2 || got["price"] != float64(0) || got["quantity"] != float64(2) {
		t.Errorf("payload: got %v, want price and quantity only", got)
	}
	if !strings.Contains(out, "Product updated successfully") {
		t.Errorf("output: %s", out)
	}
}

func TestUpdateProduct_NothingToUpdate(t *testing.T) {
	newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	saveToken(t, "tok")

	if _, err := run(t, updateProductCmd(), "p-1"); err == nil {
		t.Error("expected an error when no fields are given")
	}
}

func TestDeleteProduct_Forbidden(t *testing.T) {
	newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"success":false,"message":"Not authorized to delete this product"}`)
	})
	saveToken(t, "tok")

	_, err := run(t, deleteProductCmd(), "p-1")
	if err == nil || !strings.Contains(err.Error(), "Not authorized to delete this product") || !strings.Contains(err.Error(), "403") {
		t.Errorf("expected 403 API error, got %v", err)
	}
}

func TestCreateProduct_DefaultsQuantity(t *testing.T) {
	var got map[string]any
	newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"success":true,"message":"Product created successfully","data":{"id":"p-9"}}`)
	})
	saveToken(t, "tok")

	out, err := run(t, createProductCmd(), "--name", "Widget", "--price", "9.99")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, sent := got["quantity"]; sent {
		t.Errorf("quantity should be omitted when not given: %v", got)
	}
	if !strings.Contains(out, "p-9") {
		t.Errorf("output: %s", out)
	}
}
