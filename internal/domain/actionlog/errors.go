package actionlog

import "pantry-app-go/internal/domain/apperr"

var ErrEntryNotFound = apperr.NotFound("log_entry_not_found", "Log entry not found.")
