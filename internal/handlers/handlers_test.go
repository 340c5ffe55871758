package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"chit-backend/internal/auth"
	"chit-backend/internal/config"
	"chit-backend/internal/handlers"
	"chit-backend/internal/health"
	apihttp "chit-backend/internal/http"
	"chit-backend/internal/middleware"
	"chit-backend/internal/models"
	"chit-backend/internal/repositories"
	"chit-backend/internal/services"
	"chit-backend/internal/timeutil"

	"github.com/stretchr/testify/require"
)

// In-memory stores standing in for the Postgres repositories. The transactional
// store applies mutations only when the callback succeeds.

type memStore struct {
	members  map[int]*models.Member
	ledger   []*models.Transaction
	accounts   map[string]*models.StaffAccount
	nextTxn    int
	nextMember int
	nextID     int
}

func newMemStore(members ...*models.Member) *memStore {
	s := &memStore{
		members:  make(map[int]*models.Member),
		accounts: make(map[string]*models.StaffAccount),
	}
	for _, m := range members {
		s.members[m.ID] = m
		if m.ID > s.nextMember {
			s.nextMember = m.ID
		}
	}
	return s
}

func (s *memStore) Transact(ctx context.Context, fn func(repositories.RepaymentTx) error) error {
	tx := &memTx{store: s, updates: make(map[int]float64)}
	if err := fn(tx); err != nil {
		return err
	}
	for id, pending := range tx.updates {
		s.members[id].Pending = pending
	}
	s.ledger = append(s.ledger, tx.appended...)
	return nil
}

type memTx struct {
	store    *memStore
	updates  map[int]float64
	appended []*models.Transaction
}

func (t *memTx) MemberForUpdate(ctx context.Context, id int) (*models.Member, error) {
	m, ok := t.store.members[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (t *memTx) UpdateMemberPending(ctx context.Context, id int, pending float64) error {
	t.updates[id] = pending
	return nil
}

func (t *memTx) AppendTransaction(ctx context.Context, txn *models.Transaction) error {
	t.store.nextTxn++
	txn.ID = t.store.nextTxn
	txn.PaymentDate = timeutil.Now()
	t.appended = append(t.appended, txn)
	return nil
}

func (s *memStore) Create(ctx context.Context, staff *models.StaffAccount) error {
	if _, exists := s.accounts[staff.Email]; exists {
		return repositories.ErrDuplicateEmail
	}
	s.nextID++
	staff.ID = s.nextID
	copied := *staff
	s.accounts[staff.Email] = &copied
	return nil
}

func (s *memStore) Get(ctx context.Context, id int) (*models.StaffAccount, error) {
	for _, staff := range s.accounts {
		if staff.ID == id {
			copied := *staff
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *memStore) GetByEmail(ctx context.Context, email string) (*models.StaffAccount, error) {
	staff, ok := s.accounts[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *staff
	return &copied, nil
}

// memberStore / ledgerStore views over the shared state, backing the member
// and ledger services (and the reconciliation service's read side)

type memberStore struct{ store *memStore }

func (v memberStore) Create(ctx context.Context, m *models.Member) error {
	v.store.nextMember++
	m.ID = v.store.nextMember
	copied := *m
	v.store.members[m.ID] = &copied
	return nil
}

func (v memberStore) Get(ctx context.Context, id int) (*models.Member, error) {
	m, ok := v.store.members[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (v memberStore) List(ctx context.Context) ([]*models.Member, error) {
	members := []*models.Member{}
	for _, m := range v.store.members {
		copied := *m
		members = append(members, &copied)
	}
	return members, nil
}

func (v memberStore) ListWithPending(ctx context.Context) ([]*models.Member, error) {
	members := []*models.Member{}
	for _, m := range v.store.members {
		if m.Pending > 0 {
			copied := *m
			members = append(members, &copied)
		}
	}
	return members, nil
}

func (v memberStore) Update(ctx context.Context, m *models.Member) error {
	if _, ok := v.store.members[m.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *m
	v.store.members[m.ID] = &copied
	return nil
}

func (v memberStore) UpdateName(ctx context.Context, id int, name string) error {
	m, ok := v.store.members[id]
	if !ok {
		return repositories.ErrNotFound
	}
	m.Name = name
	return nil
}

func (v memberStore) UpdatePhone(ctx context.Context, id int, phone string) error {
	m, ok := v.store.members[id]
	if !ok {
		return repositories.ErrNotFound
	}
	m.Phone = phone
	return nil
}

func (v memberStore) Delete(ctx context.Context, id int) error {
	// Idempotent; ledger rows are left untouched
	delete(v.store.members, id)
	return nil
}

type ledgerStore struct{ store *memStore }

func (v ledgerStore) Create(ctx context.Context, txn *models.Transaction) error {
	v.store.nextTxn++
	txn.ID = v.store.nextTxn
	txn.PaymentDate = timeutil.Now()
	copied := *txn
	v.store.ledger = append(v.store.ledger, &copied)
	return nil
}

func (v ledgerStore) List(ctx context.Context) ([]*models.Transaction, error) {
	entries := []*models.Transaction{}
	for i := len(v.store.ledger) - 1; i >= 0; i-- {
		entries = append(entries, v.store.ledger[i])
	}
	return entries, nil
}

func (v ledgerStore) ListByMember(ctx context.Context, memberID int) ([]*models.Transaction, error) {
	var entries []*models.Transaction
	for _, txn := range v.store.ledger {
		if txn.MemberID == memberID {
			entries = append(entries, txn)
		}
	}
	return entries, nil
}

func testJWTManager() *auth.JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "chit-backend"
	return auth.NewJWTManager(cfg)
}

func newTestServer(store *memStore) (http.Handler, *services.AuthService) {
	jwtManager := testJWTManager()

	memberService := services.NewMemberService(memberStore{store})
	transactionService := services.NewTransactionService(ledgerStore{store})
	repaymentService := services.NewRepaymentService(store)
	authService := services.NewAuthService(store, jwtManager)
	reconciliationService := services.NewReconciliationService(memberStore{store}, ledgerStore{store})

	router := apihttp.NewRouter(
		handlers.NewMemberHandler(memberService),
		handlers.NewTransactionHandler(transactionService),
		handlers.NewRepaymentHandler(repaymentService),
		handlers.NewAuthHandler(authService),
		handlers.NewReconciliationHandler(reconciliationService),
		handlers.NewHealthHandler(health.NewHealthChecker(nil)),
		middleware.NewAuthMiddleware(jwtManager, store),
	)
	return router, authService
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func seedMember(id int, pending float64) *models.Member {
	return &models.Member{
		ID:      id,
		Name:    "Ravi",
		Phone:   "9876500000",
		Status:  models.MemberStatusActive,
		Pending: pending,
	}
}

func TestRepaymentEndpoint(t *testing.T) {
	store := newMemStore(seedMember(1, 1000))
	handler, _ := newTestServer(store)

	rec := doJSON(t, handler, http.MethodPost, "/repayments", models.RepaymentRequest{
		MemberID:      1,
		AmountToPay:   300,
		PaymentMethod: "Cash",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.RepaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, 700.0, resp.Pending)
	require.Equal(t, 1, resp.Transaction.MemberID)
	require.Equal(t, "Ravi", resp.Transaction.MemberName)
	require.Equal(t, 1000.0, resp.Transaction.PreviousPending)
	require.Equal(t, 700.0, resp.Transaction.NewPending)

	require.Equal(t, 700.0, store.members[1].Pending)
	require.Len(t, store.ledger, 1)
}

func TestRepaymentEndpointOverpayment(t *testing.T) {
	store := newMemStore(seedMember(2, 200))
	handler, _ := newTestServer(store)

	rec := doJSON(t, handler, http.MethodPost, "/repayments", models.RepaymentRequest{
		MemberID:      2,
		AmountToPay:   500,
		PaymentMethod: "UPI",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.RepaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 0.0, resp.Pending)
	require.Equal(t, 0.0, store.members[2].Pending)
}

func TestRepaymentEndpointRejections(t *testing.T) {
	store := newMemStore(seedMember(1, 1000))
	handler, _ := newTestServer(store)

	rec := doJSON(t, handler, http.MethodPost, "/repayments", models.RepaymentRequest{
		MemberID: 1, AmountToPay: -10, PaymentMethod: "Cash",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/repayments", models.RepaymentRequest{
		MemberID: 1, AmountToPay: 100, PaymentMethod: "Cheque",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/repayments", models.RepaymentRequest{
		MemberID: 99, AmountToPay: 100, PaymentMethod: "Cash",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	require.Equal(t, 1000.0, store.members[1].Pending)
	require.Empty(t, store.ledger)
}

func TestLedgerSurvivesMemberDeletion(t *testing.T) {
	store := newMemStore(seedMember(1, 1000))
	handler, _ := newTestServer(store)

	rec := doJSON(t, handler, http.MethodPost, "/repayments", models.RepaymentRequest{
		MemberID: 1, AmountToPay: 300, PaymentMethod: "Cash",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodDelete, "/users/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/users/1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// The audit history outlives the member record
	rec = doJSON(t, handler, http.MethodGet, "/transactions", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []*models.Transaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	require.Equal(t, 1, entries[0].MemberID)
	require.Equal(t, "Ravi", entries[0].MemberName)
	require.Equal(t, 300.0, entries[0].AmountPaid)

	// Deleting again is still a 204
	rec = doJSON(t, handler, http.MethodDelete, "/users/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAppendTransactionMissingFields(t *testing.T) {
	handler, _ := newTestServer(newMemStore())

	rec := doJSON(t, handler, http.MethodPost, "/transactions", models.CreateTransactionRequest{
		MemberName: "Ravi", AmountPaid: 100,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Missing required fields", body["message"])
}

func TestMemberInvalidID(t *testing.T) {
	handler, _ := newTestServer(newMemStore())

	rec := doJSON(t, handler, http.MethodGet, "/users/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatchNameRequiresValue(t *testing.T) {
	handler, _ := newTestServer(newMemStore())

	rec := doJSON(t, handler, http.MethodPatch, "/users/1/name", map[string]string{"name": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "name is required", body["message"])
}

func TestRegisterAndLoginFlow(t *testing.T) {
	handler, _ := newTestServer(newMemStore())

	rec := doJSON(t, handler, http.MethodPost, "/register", models.RegisterRequest{
		Username: "admin", Email: "admin@example.com", Password: "s3cret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var reg models.RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))
	require.True(t, reg.Success)
	require.NotZero(t, reg.UserID)

	// Duplicate email is rejected
	rec = doJSON(t, handler, http.MethodPost, "/register", models.RegisterRequest{
		Username: "other", Email: "admin@example.com", Password: "other",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Wrong password is a 401, not a storage error
	rec = doJSON(t, handler, http.MethodPost, "/login", models.LoginRequest{
		Email: "admin@example.com", Password: "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/login", models.LoginRequest{
		Email: "admin@example.com", Password: "s3cret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var login models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.True(t, login.Success)
	require.NotEmpty(t, login.Token)
}

func TestRegisterMissingFieldsEndpoint(t *testing.T) {
	handler, _ := newTestServer(newMemStore())

	rec := doJSON(t, handler, http.MethodPost, "/register", models.RegisterRequest{
		Username: "admin",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "All fields are required", body["message"])
}

func TestReconciliationEndpointRequiresAuth(t *testing.T) {
	store := newMemStore(seedMember(1, 1000))
	handler, _ := newTestServer(store)

	rec := doJSON(t, handler, http.MethodGet, "/api/reconciliation/1", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/reconciliation/1", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	out := httptest.NewRecorder()
	handler.ServeHTTP(out, req)
	require.Equal(t, http.StatusUnauthorized, out.Code)
}

func TestReconciliationEndpointWithToken(t *testing.T) {
	store := newMemStore(seedMember(1, 700))
	handler, authService := newTestServer(store)

	// Seed a repayment so the ledger has one consistent entry
	rec := doJSON(t, handler, http.MethodPost, "/repayments", models.RepaymentRequest{
		MemberID: 1, AmountToPay: 300, PaymentMethod: "Cash",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	_, err := authService.Register(context.Background(), &models.RegisterRequest{
		Username: "admin", Email: "admin@example.com", Password: "s3cret",
	})
	require.NoError(t, err)
	token, err := authService.Login(context.Background(), &models.LoginRequest{
		Email: "admin@example.com", Password: "s3cret",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/reconciliation/1", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	out := httptest.NewRecorder()
	handler.ServeHTTP(out, req)
	require.Equal(t, http.StatusOK, out.Code)

	var report models.ReconciliationReport
	require.NoError(t, json.Unmarshal(out.Body.Bytes(), &report))
	require.True(t, report.Consistent)
	require.Equal(t, 1, report.EntryCount)
}
