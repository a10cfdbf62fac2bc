package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"mwit_alumni_backend/internals/features/finance/expenses/model"
)

type CreateExpenseRequest struct {
	ExpenseTitle        string          `json:"expense_title" validate:"required,max=255"`
	ExpenseDescription  *string         `json:"expense_description"`
	ExpenseAmount       decimal.Decimal `json:"expense_amount"`
	ExpenseType         string          `json:"expense_type" validate:"required,oneof=income outcome"`
	ExpenseCategory     string          `json:"expense_category" validate:"max=100"`
	ExpenseAcademicYear string          `json:"expense_academic_year" validate:"required,numeric,len=4"`
	// "YYYY-MM-DD"
	ExpenseDate       string  `json:"expense_date" validate:"required,datetime=2006-01-02"`
	ExpenseReceiptURL *string `json:"expense_receipt_url" validate:"omitempty,url"`
}

func (r *CreateExpenseRequest) Normalize() {
	r.ExpenseTitle = strings.TrimSpace(r.ExpenseTitle)
	r.ExpenseType = strings.ToLower(strings.TrimSpace(r.ExpenseType))
	r.ExpenseCategory = strings.TrimSpace(r.ExpenseCategory)
	r.ExpenseAcademicYear = strings.TrimSpace(r.ExpenseAcademicYear)
	r.ExpenseDate = strings.TrimSpace(r.ExpenseDate)
	r.ExpenseAmount = r.ExpenseAmount.Round(2)
}

func (r *CreateExpenseRequest) ToModel(year string, createdBy *uuid.UUID) (*model.Expense, error) {
	d, err := time.Parse("2006-01-02", r.ExpenseDate)
	if err != nil {
		return nil, err
	}
	return &model.Expense{
		ExpenseTitle:        r.ExpenseTitle,
		ExpenseDescription:  r.ExpenseDescription,
		ExpenseAmount:       r.ExpenseAmount.Round(2),
		ExpenseType:         r.ExpenseType,
		ExpenseCategory:     r.ExpenseCategory,
		ExpenseAcademicYear: year,
		ExpenseDate:         datatypes.Date(d),
		ExpenseReceiptURL:   r.ExpenseReceiptURL,
		ExpenseCreatedBy:    createdBy,
	}, nil
}

// PUT /api/expenses/:id: only the fields present are changed.
type UpdateExpenseRequest struct {
	ExpenseTitle        *string          `json:"expense_title" validate:"omitempty,min=1,max=255"`
	ExpenseDescription  *string          `json:"expense_description"`
	ExpenseAmount       *decimal.Decimal `json:"expense_amount"`
	ExpenseType         *string          `json:"expense_type" validate:"omitempty,oneof=income outcome"`
	ExpenseCategory     *string          `json:"expense_category" validate:"omitempty,max=100"`
	ExpenseAcademicYear *string          `json:"expense_academic_year" validate:"omitempty,numeric,len=4"`
	ExpenseDate         *string          `json:"expense_date" validate:"omitempty,datetime=2006-01-02"`
	ExpenseReceiptURL   *string          `json:"expense_receipt_url" validate:"omitempty,url"`
}

func (r *UpdateExpenseRequest) Normalize() {
	if r.ExpenseAmount != nil {
		rounded := r.ExpenseAmount.Round(2)
		r.ExpenseAmount = &rounded
	}
}

// ApplyTo copies the set fields; year must already be normalized by the caller.
func (r *UpdateExpenseRequest) ApplyTo(e *model.Expense, year *string) error {
	if r.ExpenseTitle != nil {
		e.ExpenseTitle = strings.TrimSpace(*r.ExpenseTitle)
	}
	if r.ExpenseDescription != nil {
		e.ExpenseDescription = r.ExpenseDescription
	}
	if r.ExpenseAmount != nil {
		e.ExpenseAmount = r.ExpenseAmount.Round(2)
	}
	if r.ExpenseType != nil {
		e.ExpenseType = strings.ToLower(strings.TrimSpace(*r.ExpenseType))
	}
	if r.ExpenseCategory != nil {
		e.ExpenseCategory = strings.TrimSpace(*r.ExpenseCategory)
	}
	if year != nil {
		e.ExpenseAcademicYear = *year
	}
	if r.ExpenseDate != nil {
		d, err := time.Parse("2006-01-02", strings.TrimSpace(*r.ExpenseDate))
		if err != nil {
			return err
		}
		e.ExpenseDate = datatypes.Date(d)
	}
	if r.ExpenseReceiptURL != nil {
		e.ExpenseReceiptURL = r.ExpenseReceiptURL
	}
	return nil
}
