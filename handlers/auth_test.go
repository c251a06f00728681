package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"alshifa-backend/models"
)

func TestRegister(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)

	body := map[string]interface{}{
		"username": "newuser",
		"password": "password123",
		"name":     "مستخدم جديد",
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/auth/register", body))

	if w.Code != 201 {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["token"] == nil || resp["token"] == "" {
		t.Error("Expected a token in the response")
	}
	user := resp["user"].(map[string]interface{})
	if user["role"] != "editor" {
		t.Errorf("Expected self-registered users to get editor role, got %v", user["role"])
	}

	// Password must be stored hashed
	var stored models.User
	db.Where("username = ?", "newuser").First(&stored)
	if stored.Password == "password123" {
		t.Error("Password stored in plaintext")
	}
	if !strings.HasPrefix(stored.Password, "$2") {
		t.Errorf("Expected bcrypt hash, got %q", stored.Password[:4])
	}

	// Token cookie is set
	cookies := w.Result().Cookies()
	found := false
	for _, ck := range cookies {
		if ck.Name == "token" && ck.Value != "" {
			found = true
			if !ck.HttpOnly {
				t.Error("Expected token cookie to be httpOnly")
			}
		}
	}
	if !found {
		t.Error("Expected token cookie to be set")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)
	seedTestUser(db, "existing", "editor")

	body := map[string]interface{}{"username": "existing", "password": "password123"}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/auth/register", body))

	if w.Code != 409 {
		t.Errorf("Expected status 409, got %d", w.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)

	cases := []map[string]interface{}{
		{"username": "ab", "password": "password123"}, // username too short
		{"username": "validname", "password": "short"},
		{"username": "validname"},
		{},
	}

	for i, body := range cases {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, jsonRequest("POST", "/api/auth/register", body))
		if w.Code != 400 {
			t.Errorf("case %d: expected status 400, got %d", i, w.Code)
		}
	}
}

func TestLogin(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)
	seedTestUser(db, "admin1", "admin")

	body := map[string]interface{}{"username": "admin1", "password": "password123"}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/auth/login", body))

	if w.Code != 200 {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["token"] == nil {
		t.Error("Expected a token in the response")
	}
	user := resp["user"].(map[string]interface{})
	if user["role"] != "admin" {
		t.Errorf("Expected admin role, got %v", user["role"])
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)
	seedTestUser(db, "admin1", "admin")

	body := map[string]interface{}{"username": "admin1", "password": "wrongpassword"}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/auth/login", body))

	if w.Code != 401 {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)

	body := map[string]interface{}{"username": "nobody", "password": "password123"}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/auth/login", body))

	// Same status and message as a wrong password, no user enumeration
	if w.Code != 401 {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/auth/logout", nil))

	if w.Code != 200 {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "token" {
			if ck.Value != "" || ck.MaxAge >= 0 {
				t.Errorf("Expected expired empty token cookie, got value=%q maxAge=%d", ck.Value, ck.MaxAge)
			}
			return
		}
	}
	t.Error("Expected a token cookie in the logout response")
}

func TestGetProfile(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)
	user, token := seedTestUser(db, "editor1", "editor")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/auth/profile", nil, token))

	if w.Code != 200 {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["id"] != user.ID.String() {
		t.Errorf("Expected id %s, got %v", user.ID, resp["id"])
	}
	if resp["username"] != "editor1" {
		t.Errorf("Expected username editor1, got %v", resp["username"])
	}
}

func TestGetProfileRequiresToken(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/auth/profile", nil))

	if w.Code != 401 {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}

func TestGetProfileWithCookie(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)
	_, token := seedTestUser(db, "editor1", "editor")

	// Cookie fallback: no Authorization header, token cookie only
	req := jsonRequest("GET", "/api/auth/profile", nil)
	req.Header.Set("Cookie", "token="+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Errorf("Expected status 200 with cookie auth, got %d: %s", w.Code, w.Body.String())
	}
}
