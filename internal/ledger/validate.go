package ledger

import "strings"

// Validators are pure field checks run before a record enters the store.
// They return human-readable messages; an empty slice means valid. There are
// deliberately no range checks: a negative amount passes, only a missing or
// zero amount fails.

func ValidateTransaction(p TransactionParams) []string {
	var errs []string

	if p.Amount.IsZero() {
		errs = append(errs, "Valid amount is required")
	}

	if p.Type != TypeIncome && p.Type != TypeExpense {
		errs = append(errs, "Type must be income or expense")
	}

	if strings.TrimSpace(p.Category) == "" {
		errs = append(errs, "Category is required")
	}

	return errs
}

func ValidateCustomer(p CustomerParams) []string {
	var errs []string

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, "Name is required")
	}

	if strings.TrimSpace(p.Phone) == "" {
		errs = append(errs, "Phone is required")
	}

	return errs
}

func ValidateDebt(p DebtParams) []string {
	var errs []string

	if strings.TrimSpace(p.CustomerName) == "" {
		errs = append(errs, "Customer name is required")
	}

	if p.Amount.IsZero() {
		errs = append(errs, "Valid amount is required")
	}

	if p.DueDate.IsZero() {
		errs = append(errs, "Due date is required")
	}

	return errs
}
