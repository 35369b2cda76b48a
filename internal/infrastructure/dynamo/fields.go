package dynamo

// DynamoDB attribute names used in keys, indexes and update expressions.
const (
	fieldUserID         = "user_id"
	fieldEmail          = "email"
	fieldPhoneNumber    = "phone_number"
	fieldPasswordHash   = "password_hash"
	fieldUpdatedAt      = "updated_at"
	fieldIdentity       = "identity"
	fieldNotificationID = "notification_id"
	fieldRead           = "read"

	indexEmail       = "email-index"
	indexPhoneNumber = "phone_number-index"
)
