package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PlatformStatsResponse compteurs globaux de la plateforme. Le chiffre
// d'affaires ne compte que les commandes livrées.
type PlatformStatsResponse struct {
	Users    int             `json:"users"`
	Products int             `json:"products"`
	Orders   int             `json:"orders"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// AdminSearchResponse recherche transverse admin.
type AdminSearchResponse struct {
	Users    []UserResponse    `json:"users"`
	Products []ProductResponse `json:"products"`
	Orders   []OrderResponse   `json:"orders"`
}

// SendEmailRequest envoi d'un email transactionnel par un admin.
type SendEmailRequest struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required,min=1,max=200"`
	Message string `json:"message" validate:"required,min=1,max=10000"`
}

// ActivityLogResponse une entrée du journal d'activité.
type ActivityLogResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id,omitempty"`
	UserEmail   string          `json:"user_email,omitempty"`
	ActionType  string          `json:"action_type"`
	Description string          `json:"description"`
	IPAddress   string          `json:"ip_address,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NotificationResponse une notification utilisateur.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type,omitempty"`
	Lu        bool      `json:"lu"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationListResponse notifications + compteur non lues.
type NotificationListResponse struct {
	Items  []NotificationResponse `json:"items"`
	Unread int                    `json:"unread"`
}
