package database

import (
	"database/sql"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vibhu927/pg-next-full/app/models"
)

// paymentSelect joins the tenant, room and property so authorization can be
// decided from one fetch.
const paymentSelect = `SELECT pay.id, pay.amount, pay.payment_type, pay.status,
		  pay.payment_date, pay.tenant_id, pay.created_at, pay.updated_at,
		  t.name, t.email, t.user_id, t.rent_amount,
		  r.room_number, p.name, p.user_id
		  FROM payments pay
		  JOIN tenants t ON pay.tenant_id = t.id
		  JOIN rooms r ON t.room_id = r.id
		  JOIN properties p ON r.property_id = p.id`

func scanPayment(scan func(dest ...interface{}) error) (*models.Payment, error) {
	pay := &models.Payment{Tenant: &models.Tenant{Room: &models.Room{Property: &models.Property{}}}}
	err := scan(
		&pay.ID, &pay.Amount, &pay.PaymentType, &pay.Status,
		&pay.PaymentDate, &pay.TenantID, &pay.CreatedAt, &pay.UpdatedAt,
		&pay.Tenant.Name, &pay.Tenant.Email, &pay.Tenant.UserID, &pay.Tenant.RentAmount,
		&pay.Tenant.Room.RoomNumber, &pay.Tenant.Room.Property.Name, &pay.Tenant.Room.Property.UserID,
	)
	if err != nil {
		return nil, err
	}
	pay.Tenant.ID = pay.TenantID
	return pay, nil
}

func getPayment(db *sql.DB, id string) (*models.Payment, error) {
	pay, err := scanPayment(db.QueryRow(paymentSelect+` WHERE pay.id = $1`, id).Scan)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	return pay, err
}

// Who may see or manage a payment: an admin, the landlord who owns the
// tenant record, the tenant-user linked by email, or the owner of the room's
// property.
func isTenantUser(caller models.Caller, pay *models.Payment) bool {
	return strings.EqualFold(caller.Email, pay.Tenant.Email)
}

func canAccessPayment(caller models.Caller, pay *models.Payment) bool {
	return caller.IsAdmin() ||
		pay.Tenant.UserID == caller.ID ||
		pay.Tenant.Room.Property.UserID == caller.ID ||
		isTenantUser(caller, pay)
}

// canSettlePayment gates approve/decline: admin or the property owner.
func canSettlePayment(caller models.Caller, pay *models.Payment) bool {
	return caller.IsAdmin() || pay.Tenant.Room.Property.UserID == caller.ID
}

// CreatePayment records a payment for a tenant. Callers other than an admin
// must own the tenant record or be the email-linked tenant. A missing status
// defaults to PENDING; non-admins may otherwise only start at WAITING_APPROVAL
// (the "I've made the payment" flow), and a tenant-side RENT payment is pinned
// to the tenant's current rent amount.
func CreatePayment(db *sql.DB, caller models.Caller, pay *models.Payment) error {
	tenant, err := getTenant(db, pay.TenantID)
	if err != nil {
		return err
	}

	tenantUser := strings.EqualFold(caller.Email, tenant.Email)
	if !caller.IsAdmin() && tenant.UserID != caller.ID && !tenantUser {
		return models.ErrForbidden
	}

	if pay.Status == "" {
		pay.Status = models.PaymentStatusPending
	}
	if !caller.IsAdmin() &&
		pay.Status != models.PaymentStatusPending &&
		pay.Status != models.PaymentStatusWaitingApproval {
		return models.ErrInvalidTransition
	}

	if tenantUser && !caller.IsAdmin() && pay.PaymentType == models.PaymentTypeRent {
		pay.Amount = tenant.RentAmount
	}

	query := `INSERT INTO payments (amount, payment_type, status, tenant_id)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, payment_date, created_at, updated_at`
	err = db.QueryRow(query, pay.Amount, pay.PaymentType, pay.Status, pay.TenantID).
		Scan(&pay.ID, &pay.PaymentDate, &pay.CreatedAt, &pay.UpdatedAt)
	if err != nil {
		return err
	}
	pay.Tenant = tenant
	return nil
}

// ListPayments is role-scoped: admins see everything, landlords see payments
// of their tenants, tenant-users see their own (by email match). A tenantID
// narrows the list further.
func ListPayments(db *sql.DB, caller models.Caller, tenantID string) ([]*models.Payment, error) {
	query := paymentSelect
	var args []interface{}

	switch {
	case tenantID != "":
		query += ` WHERE pay.tenant_id = $1`
		args = append(args, tenantID)
	case caller.IsAdmin():
		// no filter
	default:
		query += ` WHERE (t.user_id = $1 OR p.user_id = $1 OR LOWER(t.email) = LOWER($2))`
		args = append(args, caller.ID, caller.Email)
	}
	query += ` ORDER BY pay.payment_date DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []*models.Payment{}
	for rows.Next() {
		pay, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, err
		}
		payments = append(payments, pay)
	}
	return payments, rows.Err()
}

func GetPayment(db *sql.DB, caller models.Caller, id string) (*models.Payment, error) {
	pay, err := getPayment(db, id)
	if err != nil {
		return nil, err
	}
	if !canAccessPayment(caller, pay) {
		return nil, models.ErrForbidden
	}
	return pay, nil
}

// UpdatePayment changes amount and/or type. Status never moves through here;
// transitions have their own operations below.
func UpdatePayment(db *sql.DB, caller models.Caller, id string, amount *decimal.Decimal, paymentType *models.PaymentType) (*models.Payment, error) {
	pay, err := getPayment(db, id)
	if err != nil {
		return nil, err
	}
	if !canAccessPayment(caller, pay) {
		return nil, models.ErrForbidden
	}

	if amount != nil {
		pay.Amount = *amount
	}
	if paymentType != nil {
		pay.PaymentType = *paymentType
	}

	query := `UPDATE payments SET amount = $1, payment_type = $2, updated_at = NOW() WHERE id = $3`
	if _, err := db.Exec(query, pay.Amount, pay.PaymentType, id); err != nil {
		return nil, err
	}
	return pay, nil
}

// transitionPayment is a compare-and-set on the status column. A concurrent
// transition that got there first leaves zero rows updated, which surfaces as
// an invalid transition rather than a silent overwrite.
func transitionPayment(db *sql.DB, id string, from, to models.PaymentStatus) error {
	res, err := db.Exec(`UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`, to, id, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrInvalidTransition
	}
	return nil
}

// MarkPaymentPaid is the tenant-side "I've made the payment" action:
// PENDING -> WAITING_APPROVAL, allowed only for the email-linked tenant-user.
func MarkPaymentPaid(db *sql.DB, caller models.Caller, id string) (*models.Payment, error) {
	pay, err := getPayment(db, id)
	if err != nil {
		return nil, err
	}
	if !isTenantUser(caller, pay) || caller.IsAdmin() {
		return nil, models.ErrForbidden
	}
	if !pay.CanTransitionTo(models.PaymentStatusWaitingApproval) {
		return nil, models.ErrInvalidTransition
	}
	if err := transitionPayment(db, id, pay.Status, models.PaymentStatusWaitingApproval); err != nil {
		return nil, err
	}
	pay.Status = models.PaymentStatusWaitingApproval
	return pay, nil
}

// ApprovePayment confirms receipt: WAITING_APPROVAL -> PAID, by an admin or
// the property owner.
func ApprovePayment(db *sql.DB, caller models.Caller, id string) (*models.Payment, error) {
	return settlePayment(db, caller, id, models.PaymentStatusPaid)
}

// DeclinePayment rejects the claim: WAITING_APPROVAL -> FAILED, by an admin or
// the property owner.
func DeclinePayment(db *sql.DB, caller models.Caller, id string) (*models.Payment, error) {
	return settlePayment(db, caller, id, models.PaymentStatusFailed)
}

func settlePayment(db *sql.DB, caller models.Caller, id string, to models.PaymentStatus) (*models.Payment, error) {
	pay, err := getPayment(db, id)
	if err != nil {
		return nil, err
	}
	if !canSettlePayment(caller, pay) {
		return nil, models.ErrForbidden
	}
	if !pay.CanTransitionTo(to) {
		return nil, models.ErrInvalidTransition
	}
	if err := transitionPayment(db, id, pay.Status, to); err != nil {
		return nil, err
	}
	pay.Status = to
	return pay, nil
}

// ForceSetPaymentStatus is the admin-only escape hatch that bypasses the
// normal edge set entirely.
func ForceSetPaymentStatus(db *sql.DB, caller models.Caller, id string, to models.PaymentStatus) (*models.Payment, error) {
	pay, err := getPayment(db, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, models.ErrForbidden
	}
	if _, err := db.Exec(`UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2`, to, id); err != nil {
		return nil, err
	}
	pay.Status = to
	return pay, nil
}

// DeletePayment removes a payment: admin or the tenant's owning landlord.
func DeletePayment(db *sql.DB, caller models.Caller, id string) error {
	pay, err := getPayment(db, id)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && pay.Tenant.UserID != caller.ID {
		return models.ErrForbidden
	}
	_, err = db.Exec(`DELETE FROM payments WHERE id = $1`, id)
	return err
}
