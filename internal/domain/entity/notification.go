package entity

import (
	"encoding/json"
	"time"
)

// Notification un message destiné à un utilisateur (table notifications).
type Notification struct {
	ID            string
	UtilisateurID string
	Message       string
	Type          string // commande | vendeur | systeme
	Lu            bool
	CreatedAt     time.Time
}

// Types d'action journalisés dans activity_logs.
const (
	ActionLogin             = "login"
	ActionSignup            = "signup"
	ActionPasswordChange    = "password_change"
	ActionPurchase          = "purchase"
	ActionOrderStatusChange = "order_status_change"
	ActionVendorOrderAction = "vendor_order_action"
	ActionValidation        = "validation"
)

// ActivityLog une entrée du journal d'activité de la plateforme. L'écriture est
// best-effort : un échec de journalisation ne bloque jamais l'opération métier.
type ActivityLog struct {
	ID          string
	UserID      string
	UserEmail   string
	ActionType  string
	Description string
	IPAddress   string
	Metadata    json.RawMessage
	CreatedAt   time.Time
}
