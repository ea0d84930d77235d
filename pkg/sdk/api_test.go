package sdk_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/liyang960414/erp/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name       string
		override   string
		production bool
		origin     string
		want       string
	}{
		{name: "override wins", override: "https://erp.example.com/api/", production: true, want: "https://erp.example.com/api"},
		{name: "production with origin", production: true, origin: "https://erp.example.com", want: "https://erp.example.com/api"},
		{name: "production without origin", production: true, want: "/api"},
		{name: "development default", want: "http://localhost:8080/api"},
		{name: "blank override ignored", override: "   ", want: sdk.DevelopmentBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sdk.ResolveBaseURL(tt.override, tt.production, tt.origin))
		})
	}
}

func TestParseTokenClaims(t *testing.T) {
	issued := time.Now().Add(-time.Hour).Truncate(time.Second)
	expires := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	claims, err := sdk.ParseTokenClaims(signed)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.True(t, issued.Equal(claims.IssuedAt))
	assert.True(t, expires.Equal(claims.ExpiresAt))
	assert.False(t, claims.IsExpired())

	_, err = sdk.ParseTokenClaims("not-a-jwt")
	assert.Error(t, err)
}

func TestTokenClaims_IsExpired(t *testing.T) {
	assert.False(t, (&sdk.TokenClaims{}).IsExpired(), "no expiry never expires")
	assert.True(t, (&sdk.TokenClaims{ExpiresAt: time.Now().Add(-time.Minute)}).IsExpired())
}

func TestClient_Login(t *testing.T) {
	var got sdk.LoginRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"token": "abc", "tokenType": "Bearer", "userId": 7,
				"username": "alice", "roles": []string{"ADMIN"},
			},
		})
	}))
	defer srv.Close()

	client := sdk.NewClient(srv.URL + "/api")
	resp, err := client.Login(context.Background(), sdk.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, sdk.LoginRequest{Username: "alice", Password: "pw"}, got)
	assert.Equal(t, "abc", resp.Token)

	profile := resp.ProvisionalProfile()
	assert.Equal(t, int64(7), profile.ID)
	require.Len(t, profile.Roles, 1)
	assert.Equal(t, sdk.Role{ID: 0, Name: "ADMIN"}, profile.Roles[0])
}

func TestClient_ListUsersSendsPaging(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("size"))
		assert.Equal(t, "username", r.URL.Query().Get("sortBy"))
		assert.False(t, r.URL.Query().Has("sortDir"))
		writeJSON(w, http.StatusOK, map[string]any{
			"content":       []map[string]any{{"id": 1, "username": "alice"}},
			"totalElements": 11,
			"totalPages":    2,
			"size":          10,
			"number":        2,
		})
	}))
	defer srv.Close()

	page, err := sdk.NewClient(srv.URL).ListUsers(context.Background(), sdk.PageQuery{Page: 2, Size: 10, SortBy: "username"})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "alice", page.Content[0].Username)
	assert.Equal(t, int64(11), page.TotalElements)
}

func TestClient_ListSaleOrdersNestedPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "SO-1", r.URL.Query().Get("billNo"))
		writeJSON(w, http.StatusOK, map[string]any{
			"content": []map[string]any{{"id": 1, "billNo": "SO-1"}},
			"page":    map[string]any{"size": 20, "number": 0, "totalElements": 1, "totalPages": 1},
		})
	}))
	defer srv.Close()

	page, err := sdk.NewClient(srv.URL).ListSaleOrders(context.Background(), sdk.SaleOrderQuery{BillNo: "SO-1"})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "SO-1", page.Content[0].BillNo)
	assert.Equal(t, 20, page.Size)
	assert.Equal(t, int64(1), page.TotalElements)
}

func TestClient_AuditLogsByDimension(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		writeJSON(w, http.StatusOK, map[string]any{"content": []any{}})
	}))
	defer srv.Close()

	_, err := sdk.NewClient(srv.URL).ListAuditLogsByModule(context.Background(), "USER", sdk.PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, "/audit-logs/module/USER", gotPath)
}

func TestClient_ChangePasswordSendsBareString(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/users/3/password", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, sdk.NewClient(srv.URL).ChangePassword(context.Background(), 3, "s3cret"))
	assert.Equal(t, `"s3cret"`, body)
}

func TestClient_Import(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/units/import", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "units.xlsx", header.Filename)
		assert.Equal(t, "workbook-bytes", string(data))

		writeJSON(w, http.StatusOK, map[string]any{
			"unitResult": map[string]any{"totalRows": 3, "successCount": 2, "failureCount": 1,
				"errors": []map[string]any{{"rowNumber": 4, "message": "duplicate code"}}},
		})
	}))
	defer srv.Close()

	resp, err := sdk.NewClient(srv.URL).Import(context.Background(), sdk.ImportUnits, "units.xlsx", strings.NewReader("workbook-bytes"))
	require.NoError(t, err)
	result, ok := resp["unitResult"]
	require.True(t, ok)
	assert.Equal(t, 2, result.SuccessCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 4, result.Errors[0].RowNumber)
}

func TestImportKind_Timeout(t *testing.T) {
	assert.Equal(t, sdk.ImportTimeoutShort, sdk.ImportUnits.Timeout())
	assert.Equal(t, sdk.ImportTimeoutStandard, sdk.ImportMaterials.Timeout())
	assert.Equal(t, sdk.ImportTimeoutLong, sdk.ImportPurchaseOrders.Timeout())
	assert.Equal(t, sdk.ImportTimeoutLong, sdk.ImportSubReqOrders.Timeout())
	assert.Len(t, sdk.ImportKinds(), 8)
}

func TestClient_EmptyPathIsConfigError(t *testing.T) {
	notifier := &recordingNotifier{}
	client := sdk.NewClient("http://127.0.0.1:0", sdk.WithNotifier(notifier))
	err := client.Do(context.Background(), &sdk.Request{}, nil)
	assert.True(t, sdk.IsKind(err, sdk.KindConfig))
	assert.Equal(t, "Request configuration error: request path is required", err.Error())
	assert.Equal(t, []string{"Request configuration error"}, notifier.Errors())
}

func TestClient_DoLeavesRequestUnchanged(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{}`)
	}))
	t.Cleanup(srv.Close)

	req := &sdk.Request{Path: "/ping"}
	require.NoError(t, sdk.NewClient(srv.URL).Do(context.Background(), req, nil))
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Empty(t, req.Method)
}

func TestTime_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "rfc3339", input: `"2025-03-04T05:06:07Z"`, want: time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)},
		{name: "local date-time", input: `"2025-03-04T05:06:07"`, want: time.Date(2025, 3, 4, 5, 6, 7, 0, time.Local)},
		{name: "local with fraction", input: `"2025-03-04T05:06:07.250"`, want: time.Date(2025, 3, 4, 5, 6, 7, 250_000_000, time.Local)},
		{name: "null", input: `null`},
		{name: "empty", input: `""`},
		{name: "not a string", input: `12`, wantErr: true},
		{name: "garbage", input: `"yesterday"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got sdk.Time
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time), "got %v want %v", got.Time, tt.want)
		})
	}
}

func TestClient_MasterDataEndpoints(t *testing.T) {
	ctx := context.Background()
	name := "Pieces"

	tests := []struct {
		name       string
		call       func(c *sdk.Client) error
		wantMethod string
		wantPath   string
		response   string
	}{
		{
			name:       "list boms",
			call:       func(c *sdk.Client) error { _, err := c.ListBOMs(ctx); return err },
			wantMethod: http.MethodGet, wantPath: "/boms", response: `[]`,
		},
		{
			name:       "get bom",
			call:       func(c *sdk.Client) error { _, err := c.GetBOM(ctx, 3); return err },
			wantMethod: http.MethodGet, wantPath: "/boms/3", response: `{}`,
		},
		{
			name:       "delete bom",
			call:       func(c *sdk.Client) error { return c.DeleteBOM(ctx, 3) },
			wantMethod: http.MethodDelete, wantPath: "/boms/3", response: `{"success":true,"data":null}`,
		},
		{
			name:       "list units",
			call:       func(c *sdk.Client) error { _, err := c.ListUnits(ctx); return err },
			wantMethod: http.MethodGet, wantPath: "/units", response: `[]`,
		},
		{
			name:       "units by group",
			call:       func(c *sdk.Client) error { _, err := c.ListUnitsByGroup(ctx, 2); return err },
			wantMethod: http.MethodGet, wantPath: "/units/group/2", response: `[]`,
		},
		{
			name:       "get unit",
			call:       func(c *sdk.Client) error { _, err := c.GetUnit(ctx, 5); return err },
			wantMethod: http.MethodGet, wantPath: "/units/5", response: `{}`,
		},
		{
			name: "create unit",
			call: func(c *sdk.Client) error {
				_, err := c.CreateUnit(ctx, sdk.CreateUnitInput{Code: "PCS", Name: name, UnitGroupID: 2})
				return err
			},
			wantMethod: http.MethodPost, wantPath: "/units", response: `{}`,
		},
		{
			name: "update unit",
			call: func(c *sdk.Client) error {
				_, err := c.UpdateUnit(ctx, 5, sdk.UpdateUnitInput{Name: &name})
				return err
			},
			wantMethod: http.MethodPut, wantPath: "/units/5", response: `{}`,
		},
		{
			name:       "delete unit",
			call:       func(c *sdk.Client) error { return c.DeleteUnit(ctx, 5) },
			wantMethod: http.MethodDelete, wantPath: "/units/5", response: `{"success":true,"data":null}`,
		},
		{
			name:       "list unit groups",
			call:       func(c *sdk.Client) error { _, err := c.ListUnitGroups(ctx); return err },
			wantMethod: http.MethodGet, wantPath: "/unit-groups", response: `[]`,
		},
		{
			name:       "get unit group",
			call:       func(c *sdk.Client) error { _, err := c.GetUnitGroup(ctx, 2); return err },
			wantMethod: http.MethodGet, wantPath: "/unit-groups/2", response: `{}`,
		},
		{
			name: "create unit group",
			call: func(c *sdk.Client) error {
				_, err := c.CreateUnitGroup(ctx, sdk.CreateUnitGroupInput{Code: "QTY", Name: "Quantity"})
				return err
			},
			wantMethod: http.MethodPost, wantPath: "/unit-groups", response: `{}`,
		},
		{
			name: "update unit group",
			call: func(c *sdk.Client) error {
				_, err := c.UpdateUnitGroup(ctx, 2, sdk.UpdateUnitGroupInput{Name: &name})
				return err
			},
			wantMethod: http.MethodPut, wantPath: "/unit-groups/2", response: `{}`,
		},
		{
			name:       "delete unit group",
			call:       func(c *sdk.Client) error { return c.DeleteUnitGroup(ctx, 2) },
			wantMethod: http.MethodDelete, wantPath: "/unit-groups/2", response: `{"success":true,"data":null}`,
		},
		{
			name:       "list material groups",
			call:       func(c *sdk.Client) error { _, err := c.ListMaterialGroups(ctx); return err },
			wantMethod: http.MethodGet, wantPath: "/material-groups", response: `[]`,
		},
		{
			name:       "get material group",
			call:       func(c *sdk.Client) error { _, err := c.GetMaterialGroup(ctx, 9); return err },
			wantMethod: http.MethodGet, wantPath: "/material-groups/9", response: `{}`,
		},
		{
			name:       "materials by group",
			call:       func(c *sdk.Client) error { _, err := c.ListMaterialsByGroup(ctx, 9); return err },
			wantMethod: http.MethodGet, wantPath: "/materials/group/9", response: `[]`,
		},
		{
			name:       "list suppliers",
			call:       func(c *sdk.Client) error { _, err := c.ListSuppliers(ctx); return err },
			wantMethod: http.MethodGet, wantPath: "/suppliers", response: `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMethod, gotPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMethod, gotPath = r.Method, r.URL.Path
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, tt.response)
			}))
			defer srv.Close()

			require.NoError(t, tt.call(sdk.NewClient(srv.URL)))
			assert.Equal(t, tt.wantMethod, gotMethod)
			assert.Equal(t, tt.wantPath, gotPath)
		})
	}
}

func TestClient_GetBOMDecodesItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"id": 3, "materialCode": "FG-1", "version": "V1.0",
				"createdAt": "2025-01-02T03:04:05",
				"items": []map[string]any{{
					"sequence": 1, "childMaterialCode": "RM-1", "childUnitCode": "PCS",
					"numerator": 2.5, "denominator": 1, "scrapRate": 0.05,
				}},
			},
		})
	}))
	defer srv.Close()

	bom, err := sdk.NewClient(srv.URL).GetBOM(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "V1.0", bom.Version)
	assert.Equal(t, 2025, bom.CreatedAt.Year())
	require.Len(t, bom.Items, 1)
	assert.Equal(t, "RM-1", bom.Items[0].ChildMaterialCode)
	assert.InDelta(t, 2.5, bom.Items[0].Numerator, 1e-9)
	require.NotNil(t, bom.Items[0].ScrapRate)
	assert.InDelta(t, 0.05, *bom.Items[0].ScrapRate, 1e-9)
}

func TestClient_CreateUnitRequiresGroup(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := sdk.NewClient(srv.URL).CreateUnit(context.Background(), sdk.CreateUnitInput{Code: "PCS", Name: "Pieces"})
	require.Error(t, err)
	assert.False(t, called)
}
