package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"rvce-fee-backend-go/internal/models"
	"rvce-fee-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

// importFeeItem tolerates both spreadsheet header variants and both numeric
// and string amounts.
type importFeeItem struct {
	StudentName *string         `json:"student_name"`
	Name        *string         `json:"name"`
	Department  *string         `json:"department"`
	FeeType     *string         `json:"fee_type"`
	Type        *string         `json:"type"`
	Amount      json.RawMessage `json:"amount"`
	DueDate     *string         `json:"due_date"`
}

type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}

func (s *Server) ListPendingFees(w http.ResponseWriter, r *http.Request) {
	fees := []models.PendingFee{}
	if err := s.DB.Select(&fees, `
SELECT id, student_name, department, fee_type, amount, due_date
FROM pending_fees
ORDER BY id ASC
`); err != nil {
		WriteText(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, fees)
}

// ImportPendingFees inserts every row of the uploaded batch. A malformed row
// degrades to empty/zero fields instead of failing the batch. The response
// carries the inserted rows oldest-to-newest, built from each insert's
// generated id rather than re-queried, so concurrent imports cannot
// interleave into each other's responses.
func (s *Server) ImportPendingFees(w http.ResponseWriter, r *http.Request) {
	role := CurrentRole(r)
	if role != services.RoleAdmin && role != services.RoleOwner {
		WriteText(w, http.StatusForbidden, "Access Denied")
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteText(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	items := []json.RawMessage{}
	if err := json.Unmarshal(body, &items); err != nil {
		WriteText(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	inserted := make([]models.PendingFee, 0, len(items))
	for _, raw := range items {
		var item importFeeItem
		_ = json.Unmarshal(raw, &item)
		fee := models.PendingFee{
			StudentName: firstNonEmpty(item.StudentName, item.Name),
			Department:  deref(item.Department),
			FeeType:     firstNonEmpty(item.FeeType, item.Type),
			Amount:      parseAmount(item.Amount),
			DueDate:     deref(item.DueDate),
			ImportedBy:  role,
		}
		res, err := s.DB.Exec(`
INSERT INTO pending_fees (student_name, department, fee_type, amount, due_date, imported_by, created_at)
VALUES (?,?,?,?,?,?,datetime('now'))
`, fee.StudentName, fee.Department, fee.FeeType, fee.Amount, fee.DueDate, fee.ImportedBy)
		if err != nil {
			WriteText(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		fee.ID, _ = res.LastInsertId()
		inserted = append(inserted, fee)
	}
	WriteJSON(w, http.StatusCreated, inserted)
}

// DeletePendingFee is idempotent: deleting an id that no longer exists still
// returns 204.
func (s *Server) DeletePendingFee(w http.ResponseWriter, r *http.Request) {
	if !isAuthenticated(r) {
		WriteText(w, http.StatusForbidden, "Access Denied")
		return
	}
	feeID, _ := strconv.ParseInt(chi.URLParam(r, "feeID"), 10, 64)
	if _, err := s.DB.Exec(`DELETE FROM pending_fees WHERE id = ?`, feeID); err != nil {
		WriteText(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) DeletePendingFeesByStudent(w http.ResponseWriter, r *http.Request) {
	if !isAdminOwner(r) {
		WriteText(w, http.StatusForbidden, "Access Denied")
		return
	}
	var req struct {
		StudentName string `json:"student_name"`
		DueDate     string `json:"due_date"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	studentName := strings.TrimSpace(req.StudentName)
	dueDate := strings.TrimSpace(req.DueDate)
	if studentName == "" || dueDate == "" {
		WriteJSON(w, http.StatusOK, DeletedResponse{Deleted: 0})
		return
	}
	// Name matches case-insensitively; due_date must match exactly.
	res, err := s.DB.Exec(`DELETE FROM pending_fees WHERE LOWER(student_name) = LOWER(?) AND due_date = ?`, studentName, dueDate)
	if err != nil {
		WriteText(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	deleted, _ := res.RowsAffected()
	WriteJSON(w, http.StatusOK, DeletedResponse{Deleted: deleted})
}

// parseAmount accepts JSON numbers and numeric strings; anything else
// becomes zero rather than rejecting the row.
func parseAmount(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return number
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if value, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			return value
		}
	}
	return 0
}

func firstNonEmpty(values ...*string) string {
	for _, value := range values {
		if value != nil && *value != "" {
			return *value
		}
	}
	return ""
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
