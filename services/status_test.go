package services

import (
	"fmt"
	"testing"
	"time"

	"facturation-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{},
		&models.Invoice{}, &models.InvoiceLine{}, &models.StatusChange{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func dateFromNow(days int) string {
	return time.Now().AddDate(0, 0, days).Format(DateLayout)
}

func completeInvoice(status int, dueDate string) *models.Invoice {
	return &models.Invoice{
		Id:         "inv-1",
		IssuerName: "ACME SARL",
		ClientName: "Dupont & Fils",
		DueDate:    dueDate,
		Status:     status,
		Lines:      []models.InvoiceLine{{Id: "l1", Description: "Prestation", Quantity: 1, UnitPrice: 100}},
	}
}

func TestEvaluateStatusCompletionTransition(t *testing.T) {
	now := time.Now()

	inv := completeInvoice(models.StatusDraft, dateFromNow(10))
	got, ok := EvaluateStatus(inv, now)
	if !ok || got != models.StatusPending {
		t.Fatalf("complete draft: got (%d,%v), want (%d,true)", got, ok, models.StatusPending)
	}

	// Missing any completeness ingredient keeps DRAFT.
	incomplete := completeInvoice(models.StatusDraft, dateFromNow(10))
	incomplete.ClientName = ""
	if got, _ := EvaluateStatus(incomplete, now); got != models.StatusDraft {
		t.Fatalf("incomplete draft: got %d, want %d", got, models.StatusDraft)
	}
	noLines := completeInvoice(models.StatusDraft, dateFromNow(10))
	noLines.Lines = nil
	if got, _ := EvaluateStatus(noLines, now); got != models.StatusDraft {
		t.Fatalf("draft without lines: got %d, want %d", got, models.StatusDraft)
	}
}

func TestEvaluateStatusDueDateRoundTrip(t *testing.T) {
	now := time.Now()

	inv := completeInvoice(models.StatusPending, dateFromNow(-1))
	got, _ := EvaluateStatus(inv, now)
	if got != models.StatusUnpaid {
		t.Fatalf("overdue pending: got %d, want %d", got, models.StatusUnpaid)
	}

	inv.Status = got
	inv.DueDate = dateFromNow(1)
	if got, _ = EvaluateStatus(inv, now); got != models.StatusPending {
		t.Fatalf("postponed unpaid: got %d, want %d", got, models.StatusPending)
	}
}

func TestEvaluateStatusDraftCascadesToUnpaid(t *testing.T) {
	// A complete draft with a past due date falls through both rules in one pass.
	inv := completeInvoice(models.StatusDraft, dateFromNow(-3))
	if got, _ := EvaluateStatus(inv, time.Now()); got != models.StatusUnpaid {
		t.Fatalf("got %d, want %d", got, models.StatusUnpaid)
	}
}

func TestEvaluateStatusTerminalStatusesImmutable(t *testing.T) {
	now := time.Now()
	for _, status := range []int{models.StatusPaid, models.StatusCancelled} {
		for _, due := range []string{dateFromNow(-30), dateFromNow(30)} {
			inv := completeInvoice(status, due)
			if got, _ := EvaluateStatus(inv, now); got != status {
				t.Fatalf("status %d due %s: got %d, want unchanged", status, due, got)
			}
		}
	}
}

func TestEvaluateStatusIdempotent(t *testing.T) {
	now := time.Now()
	for _, status := range []int{models.StatusDraft, models.StatusPending, models.StatusUnpaid, models.StatusPaid} {
		inv := completeInvoice(status, dateFromNow(-1))
		once, _ := EvaluateStatus(inv, now)
		inv.Status = once
		twice, _ := EvaluateStatus(inv, now)
		if once != twice {
			t.Fatalf("status %d: first pass %d, second pass %d", status, once, twice)
		}
	}
}

func TestEvaluateStatusBadDueDate(t *testing.T) {
	for _, due := range []string{"", "   ", "not-a-date", "31/12/2025"} {
		inv := completeInvoice(models.StatusPending, due)
		got, ok := EvaluateStatus(inv, time.Now())
		if ok || got != models.StatusPending {
			t.Fatalf("due %q: got (%d,%v), want unchanged and not ok", due, got, ok)
		}
	}
}

func TestRefreshStatusPersistsAndAudits(t *testing.T) {
	db := setupTestDB(t)
	user := models.User{Email: "owner@example.com", Name: "Owner"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	inv := models.Invoice{
		Id:         "inv-refresh",
		Name:       "Test",
		UserId:     user.Id,
		IssuerName: "ACME",
		ClientName: "Client",
		DueDate:    dateFromNow(5),
		Status:     models.StatusDraft,
		Lines:      []models.InvoiceLine{{Description: "x", Quantity: 1, UnitPrice: 10}},
	}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}

	got := RefreshStatus(db, &inv)
	if got.Status != models.StatusPending {
		t.Fatalf("refreshed status = %d, want %d", got.Status, models.StatusPending)
	}

	var stored models.Invoice
	if err := db.First(&stored, "id = ?", inv.Id).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Status != models.StatusPending {
		t.Fatalf("persisted status = %d, want %d", stored.Status, models.StatusPending)
	}

	changes := StatusHistory(db, inv.Id)
	if len(changes) != 1 {
		t.Fatalf("expected 1 audit row, got %d", len(changes))
	}
	if changes[0].FromStatus != models.StatusDraft || changes[0].ToStatus != models.StatusPending {
		t.Fatalf("audit row %d→%d, want %d→%d",
			changes[0].FromStatus, changes[0].ToStatus, models.StatusDraft, models.StatusPending)
	}

	// Second pass must be a no-op.
	again := RefreshStatus(db, got)
	if again.Status != models.StatusPending {
		t.Fatalf("second refresh status = %d", again.Status)
	}
	if n := len(StatusHistory(db, inv.Id)); n != 1 {
		t.Fatalf("second refresh added audit rows: %d", n)
	}
}
