package yaarchive

import "errors"

var (
	ErrMessageNotFound  = errors.New("archived message not found")
	ErrFailedToStore    = errors.New("failed to store archived message")
	ErrFailedToLoad     = errors.New("failed to load archived message")
	ErrFailedToDelete   = errors.New("failed to delete archived message")
	ErrFailedToMigrate  = errors.New("failed to migrate archive")
	ErrInvalidMessageID = errors.New("invalid message id")
)
