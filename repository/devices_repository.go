package repository

import "database/sql"

// DevicesRepository stores push-notification device tokens. Delivery through
// the push provider is handled out of process; this API only collects tokens.
type DevicesRepository struct {
	db *sql.DB
}

func NewDevicesRepository(db *sql.DB) *DevicesRepository {
	return &DevicesRepository{db: db}
}

// RegisterToken is idempotent: re-registering the same token for the same
// user is a no-op.
func (r *DevicesRepository) RegisterToken(userID int, token string) error {
	_, err := r.db.Exec(`
		INSERT INTO fcm_tokens (user_id, token)
		VALUES ($1, $2)
		ON CONFLICT (user_id, token) DO NOTHING
	`, userID, token)
	return err
}
