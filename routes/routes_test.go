package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"studymate/models"
	"studymate/services"
	"studymate/store"
	"studymate/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

type stubGenerator struct {
	reply string
	err   error
	calls int
}

func (s *stubGenerator) GenerateText(_ context.Context, _ services.CompletionRequest) (string, error) {
	s.calls++
	return s.reply, s.err
}

func newTestRouter(gen services.TextGenerator) (*gin.Engine, *store.MemoryStore) {
	st := store.NewMemoryStore()
	r := gin.New()
	r = SetupRouter(r, Deps{
		Store: st,
		Chat:  services.NewChatService(st, gen),
		Quiz:  services.NewQuizService(st, gen),
	})
	return r, st
}

func newTestUser(t *testing.T, st *store.MemoryStore) (uuid.UUID, string) {
	t.Helper()
	user := models.User{FullName: "Test Student", Email: fmt.Sprintf("%s@example.com", uuid.NewString())}
	if err := st.CreateUser(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := utils.GenerateToken(user.ID.String())
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return user.ID, token
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func tenQuestionsJSON(t *testing.T) string {
	t.Helper()
	qs := make([]models.QuizQuestion, 10)
	for i := range qs {
		qs[i] = models.QuizQuestion{
			Q:           fmt.Sprintf("Question %d?", i+1),
			Options:     []string{"A", "B", "C", "D"},
			AnswerIndex: i % 4,
			Explanation: "Covered in the notes.",
		}
	}
	b, err := json.Marshal(qs)
	if err != nil {
		t.Fatalf("marshal questions: %v", err)
	}
	return string(b)
}

func TestAIEndpointsRequireAuth(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	r, st := newTestRouter(gen)

	for _, path := range []string{"/chat", "/quiz"} {
		w := doJSON(r, http.MethodPost, path, "", gin.H{"subjectId": uuid.NewString(), "message": "hi"})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s without header: expected 401, got %d", path, w.Code)
		}

		w = doJSON(r, http.MethodPost, path, "not-a-token", gin.H{"subjectId": uuid.NewString(), "message": "hi"})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s with bad token: expected 401, got %d", path, w.Code)
		}
	}

	// Rejected before any side effect.
	if gen.calls != 0 {
		t.Fatalf("no completion should run for unauthenticated requests")
	}
	if subs, _ := st.ListSubjects(uuid.Nil); len(subs) != 0 {
		t.Fatalf("no store writes expected")
	}
}

func TestChatMissingFields(t *testing.T) {
	r, st := newTestRouter(&stubGenerator{reply: "ok"})
	_, token := newTestUser(t, st)

	cases := []gin.H{
		{},
		{"subjectId": uuid.NewString()},
		{"message": "hello"},
	}
	for _, body := range cases {
		w := doJSON(r, http.MethodPost, "/chat", token, body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %v: expected 400, got %d", body, w.Code)
		}
		if got := decodeBody(t, w)["error"]; got != "Missing subjectId or message" {
			t.Fatalf("unexpected error message: %v", got)
		}
	}
}

func TestChatEndToEnd(t *testing.T) {
	gen := &stubGenerator{reply: "Photosynthesis converts light into chemical energy."}
	r, st := newTestRouter(gen)
	userID, token := newTestUser(t, st)

	subject := models.Subject{UserID: userID, Title: "Biology"}
	if err := st.CreateSubject(&subject); err != nil {
		t.Fatalf("create subject: %v", err)
	}
	note := models.Note{UserID: userID, SubjectID: subject.ID, Title: "Photosynthesis", Content: "Light becomes sugar."}
	if err := st.CreateNote(&note); err != nil {
		t.Fatalf("create note: %v", err)
	}

	w := doJSON(r, http.MethodPost, "/chat", token, gin.H{
		"subjectId": subject.ID.String(),
		"message":   "What is photosynthesis?",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := decodeBody(t, w)["message"]; got != gen.reply {
		t.Fatalf("unexpected reply: %v", got)
	}

	chat, found, err := st.FindChat(subject.ID, userID)
	if err != nil || !found {
		t.Fatalf("chat record missing: %v", err)
	}
	msgs, _ := st.LatestMessages(chat.ID, 10)
	if len(msgs) != 2 || msgs[0].Role != models.RoleUser || msgs[1].Role != models.RoleAssistant {
		t.Fatalf("expected persisted user+assistant turns, got %+v", msgs)
	}

	// Transcript endpoint returns the exchange in order.
	w = doJSON(r, http.MethodGet, "/api/subjects/"+subject.ID.String()+"/chat", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("transcript: expected 200, got %d", w.Code)
	}
	if msgsAny, ok := decodeBody(t, w)["messages"].([]any); !ok || len(msgsAny) != 2 {
		t.Fatalf("unexpected transcript body: %s", w.Body.String())
	}
}

func TestQuizZeroNotes(t *testing.T) {
	r, st := newTestRouter(&stubGenerator{reply: "[]"})
	userID, token := newTestUser(t, st)

	subject := models.Subject{UserID: userID, Title: "Empty"}
	if err := st.CreateSubject(&subject); err != nil {
		t.Fatalf("create subject: %v", err)
	}

	w := doJSON(r, http.MethodPost, "/quiz", token, gin.H{"subjectId": subject.ID.String()})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if got := decodeBody(t, w)["error"]; got != "No notes found. Please create some notes first." {
		t.Fatalf("unexpected error message: %v", got)
	}
	if quizzes, _ := st.ListQuizzes(subject.ID, userID); len(quizzes) != 0 {
		t.Fatalf("no quiz record should be created")
	}
}

func TestQuizEndToEnd(t *testing.T) {
	gen := &stubGenerator{reply: "Here you go:\n" + tenQuestionsJSON(t) + "\nEnjoy!"}
	r, st := newTestRouter(gen)
	userID, token := newTestUser(t, st)

	subject := models.Subject{UserID: userID, Title: "Biology"}
	if err := st.CreateSubject(&subject); err != nil {
		t.Fatalf("create subject: %v", err)
	}
	note := models.Note{UserID: userID, SubjectID: subject.ID, Title: "Cells", Content: "Basic unit of life."}
	if err := st.CreateNote(&note); err != nil {
		t.Fatalf("create note: %v", err)
	}

	w := doJSON(r, http.MethodPost, "/quiz", token, gin.H{"subjectId": subject.ID.String()})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	quizID, _ := body["quizId"].(string)
	if quizID == "" {
		t.Fatalf("missing quizId in response: %s", w.Body.String())
	}
	questions, ok := body["questions"].([]any)
	if !ok || len(questions) != 10 {
		t.Fatalf("expected 10 questions on the wire, got %s", w.Body.String())
	}
	first, _ := questions[0].(map[string]any)
	for _, field := range []string{"q", "options", "answerIndex", "explanation"} {
		if _, present := first[field]; !present {
			t.Fatalf("wire question missing %q: %v", field, first)
		}
	}

	// The quiz is durably readable afterwards.
	w = doJSON(r, http.MethodGet, "/api/quizzes/"+quizID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get quiz: expected 200, got %d", w.Code)
	}
}

func TestQuizMalformedModelOutput(t *testing.T) {
	r, st := newTestRouter(&stubGenerator{reply: "I am unable to help with that."})
	userID, token := newTestUser(t, st)

	subject := models.Subject{UserID: userID, Title: "Biology"}
	if err := st.CreateSubject(&subject); err != nil {
		t.Fatalf("create subject: %v", err)
	}
	note := models.Note{UserID: userID, SubjectID: subject.ID, Title: "Cells", Content: "Basic unit of life."}
	if err := st.CreateNote(&note); err != nil {
		t.Fatalf("create note: %v", err)
	}

	w := doJSON(r, http.MethodPost, "/quiz", token, gin.H{"subjectId": subject.ID.String()})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if got := decodeBody(t, w)["error"]; got != "Failed to generate valid quiz. Please try again." {
		t.Fatalf("unexpected error message: %v", got)
	}
}

func TestSubjectAndNoteFlow(t *testing.T) {
	r, st := newTestRouter(&stubGenerator{})

	// Register through the API and use the issued token.
	w := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":     "student@example.com",
		"password":  "secret123",
		"full_name": "Student",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	token, _ := decodeBody(t, w)["token"].(string)
	if token == "" {
		t.Fatalf("register did not return a token")
	}

	w = doJSON(r, http.MethodPost, "/api/subjects", token, gin.H{"title": "Chemistry"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create subject: expected 201, got %d", w.Code)
	}
	subjectBody := decodeBody(t, w)["subject"].(map[string]any)
	subjectID := subjectBody["id"].(string)

	w = doJSON(r, http.MethodPost, "/api/subjects/"+subjectID+"/notes", token, gin.H{
		"title":   "Atoms",
		"content": "Matter is made of atoms.",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create note: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodGet, "/api/subjects/"+subjectID+"/notes", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list notes: expected 200, got %d", w.Code)
	}
	notes, _ := decodeBody(t, w)["notes"].([]any)
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}

	// A second account sees none of it.
	_, otherToken := newTestUser(t, st)
	w = doJSON(r, http.MethodGet, "/api/subjects", otherToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list subjects: expected 200, got %d", w.Code)
	}
	if subs, _ := decodeBody(t, w)["subjects"].([]any); len(subs) != 0 {
		t.Fatalf("other user must not see the subject")
	}

	w = doJSON(r, http.MethodPost, "/api/subjects/"+subjectID+"/notes", otherToken, gin.H{
		"title":   "Intrusion",
		"content": "should fail",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for another user's subject, got %d", w.Code)
	}
}

func TestLoginFlow(t *testing.T) {
	r, _ := newTestRouter(&stubGenerator{})

	w := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":     "login@example.com",
		"password":  "secret123",
		"full_name": "Login Test",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", w.Code)
	}

	w = doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "login@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if token, _ := decodeBody(t, w)["token"].(string); token == "" {
		t.Fatalf("login did not return a token")
	}

	w = doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "login@example.com",
		"password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401, got %d", w.Code)
	}
}
