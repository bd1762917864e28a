package usertests

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// fakeService is an in-process imitation of the reqres API. Its behavior can be altered to
// check that the suite notices when the real service misbehaves.
type fakeService struct {
	createStatus   int
	badEmail       bool
	omitToken      bool
	wrongErrorText bool
	ignoreUpdate   bool

	lastID int
	lock   sync.Mutex
}

func newFakeService() *fakeService {
	return &fakeService{createStatus: http.StatusCreated}
}

func (f *fakeService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users/{id}", f.getUser)
	mux.HandleFunc("POST /api/users", f.createUser)
	mux.HandleFunc("PUT /api/users/{id}", f.updateUser)
	mux.HandleFunc("DELETE /api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /api/register", f.register)
	return requireAPIKey(mux)
}

func requireAPIKey(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"error": "Missing API key"})
			return
		}
		h.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (f *fakeService) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 || id > 12 {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{})
		return
	}
	email := "janet.weaver@reqres.in"
	if f.badEmail {
		email = "janet.weaver"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"id":         id,
			"email":      email,
			"first_name": "Janet",
			"last_name":  "Weaver",
			"avatar":     "https://reqres.in/img/faces/2-image.jpg",
		},
		"support": map[string]interface{}{
			"url":  "https://contentcaddy.io",
			"text": "Tired of writing endless social media content?",
		},
	})
}

func decodeParams(w http.ResponseWriter, r *http.Request) (map[string]interface{}, bool) {
	params := make(map[string]interface{})
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid JSON body"})
		return nil, false
	}
	return params, true
}

func (f *fakeService) createUser(w http.ResponseWriter, r *http.Request) {
	params, ok := decodeParams(w, r)
	if !ok {
		return
	}
	f.lock.Lock()
	f.lastID++
	id := f.lastID
	f.lock.Unlock()
	params["id"] = strconv.Itoa(id)
	params["createdAt"] = time.Now().UTC().Format(time.RFC3339Nano)
	writeJSON(w, f.createStatus, params)
}

func (f *fakeService) updateUser(w http.ResponseWriter, r *http.Request) {
	params, ok := decodeParams(w, r)
	if !ok {
		return
	}
	if f.ignoreUpdate {
		params["name"] = "morpheus"
	}
	params["updatedAt"] = time.Now().UTC().Format(time.RFC3339Nano)
	writeJSON(w, http.StatusOK, params)
}

func (f *fakeService) register(w http.ResponseWriter, r *http.Request) {
	params, ok := decodeParams(w, r)
	if !ok {
		return
	}
	missingEmail, missingPassword := "Missing email or username", "Missing password"
	if f.wrongErrorText {
		missingEmail, missingPassword = "Bad request", "Bad request"
	}
	switch {
	case params["email"] == nil || params["email"] == "":
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": missingEmail})
	case params["password"] == nil || params["password"] == "":
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": missingPassword})
	case f.omitToken:
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": 4})
	default:
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": 4, "token": "QpwL5tke4Pnpja7X4"})
	}
}
