package handlers

import (
	"net/http/httptest"
	"testing"

	"alshifa-backend/models"

	"github.com/google/uuid"
)

func TestGetDoctorsFiltersBySpecialty(t *testing.T) {
	db := freshDB()
	router := setupDoctorRouter(db)

	dental := seedCategory(db, "طب الأسنان")
	internal := seedCategory(db, "الباطنية")
	seedDoctor(db, "د. أحمد", dental.ID)
	seedDoctor(db, "د. سارة", dental.ID)
	seedDoctor(db, "د. خالد", internal.ID)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/doctors?specialty="+dental.ID.String(), nil))

	if w.Code != 200 {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	doctors := parseResponseArray(w)
	if len(doctors) != 2 {
		t.Errorf("Expected 2 doctors in specialty, got %d", len(doctors))
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/doctors", nil))
	if len(parseResponseArray(w)) != 3 {
		t.Errorf("Expected 3 doctors without filter")
	}
}

func TestGetDoctorsHidesInactive(t *testing.T) {
	db := freshDB()
	router := setupDoctorRouter(db)

	cat := seedCategory(db, "طب الأسنان")
	doc := seedDoctor(db, "د. أحمد", cat.ID)
	db.Model(&doc).Update("is_active", false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/doctors", nil))

	if len(parseResponseArray(w)) != 0 {
		t.Errorf("Expected inactive doctor hidden from public listing")
	}
}

func TestGetDoctorPreloadsSpecialty(t *testing.T) {
	db := freshDB()
	router := setupDoctorRouter(db)

	cat := seedCategory(db, "طب الأسنان")
	doc := seedDoctor(db, "د. أحمد", cat.ID)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/doctors/"+doc.ID.String(), nil))

	if w.Code != 200 {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	specialty, ok := resp["specialty"].(map[string]interface{})
	if !ok || specialty["name"] != "طب الأسنان" {
		t.Errorf("Expected specialty preloaded, got %v", resp["specialty"])
	}
}

func TestCreateDoctor(t *testing.T) {
	db := freshDB()
	router := setupDoctorRouter(db)
	_, token := seedTestUser(db, "admin1", "admin")

	cat := seedCategory(db, "طب الأسنان")
	body := map[string]interface{}{
		"name":         "د. أحمد محمد",
		"specialty_id": cat.ID.String(),
		"experience":   12,
		"image":        "https://example.com/photos/ahmed.jpg",
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/doctors", body, token))

	if w.Code != 201 {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["experience"] != float64(12) {
		t.Errorf("Expected experience 12, got %v", resp["experience"])
	}
}

func TestCreateDoctorRejectsBadImageURL(t *testing.T) {
	db := freshDB()
	router := setupDoctorRouter(db)
	_, token := seedTestUser(db, "admin1", "admin")

	cat := seedCategory(db, "طب الأسنان")
	cases := []string{
		"not-a-url",
		"ftp://example.com/photo.jpg",
		"https://example.com/document.pdf",
	}

	for _, img := range cases {
		body := map[string]interface{}{
			"name":         "د. أحمد",
			"specialty_id": cat.ID.String(),
			"image":        img,
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authRequest("POST", "/api/admin/doctors", body, token))
		if w.Code != 400 {
			t.Errorf("image %q: expected status 400, got %d", img, w.Code)
		}
	}
}

func TestCreateDoctorUnknownSpecialty(t *testing.T) {
	db := freshDB()
	router := setupDoctorRouter(db)
	_, token := seedTestUser(db, "admin1", "admin")

	body := map[string]interface{}{
		"name":         "د. أحمد",
		"specialty_id": uuid.New().String(),
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/doctors", body, token))

	if w.Code != 400 {
		t.Errorf("Expected status 400 for unknown specialty, got %d", w.Code)
	}
}

func TestUpdateDoctor(t *testing.T) {
	db := freshDB()
	router := setupDoctorRouter(db)
	_, token := seedTestUser(db, "admin1", "admin")

	cat := seedCategory(db, "طب الأسنان")
	doc := seedDoctor(db, "د. أحمد", cat.ID)

	body := map[string]interface{}{
		"name":         "د. أحمد العلي",
		"specialty_id": cat.ID.String(),
		"experience":   15,
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/admin/doctors/"+doc.ID.String(), body, token))

	if w.Code != 200 {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["name"] != "د. أحمد العلي" {
		t.Errorf("Expected updated name, got %v", resp["name"])
	}
}

func TestDeleteDoctor(t *testing.T) {
	db := freshDB()
	router := setupDoctorRouter(db)
	_, token := seedTestUser(db, "admin1", "admin")

	cat := seedCategory(db, "طب الأسنان")
	doc := seedDoctor(db, "د. أحمد", cat.ID)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", "/api/admin/doctors/"+doc.ID.String(), nil, token))

	if w.Code != 200 {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Doctor{}).Where("id = ?", doc.ID).Count(&count)
	if count != 0 {
		t.Errorf("Expected doctor removed")
	}
}

func TestDoctorAdminGate(t *testing.T) {
	db := freshDB()
	router := setupDoctorRouter(db)
	_, editorToken := seedTestUser(db, "editor1", "editor")

	cat := seedCategory(db, "طب الأسنان")
	body := map[string]interface{}{"name": "د. أحمد", "specialty_id": cat.ID.String()}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/doctors", body, editorToken))
	if w.Code != 403 {
		t.Errorf("Expected status 403 for editor, got %d", w.Code)
	}
}
