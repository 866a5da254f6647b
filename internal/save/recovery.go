package save

import (
	"fmt"

	"github.com/osse101/idlefarm/internal/domain"
)

// RecoveryOptions lists the choices accepted by Service.Recover, in menu order
var RecoveryOptions = []string{RecoverRestoreBackup, RecoverReset, RecoverDiscard}

// RecoveryRequiredError is returned by Load when the stored save cannot be
// used. The live game is left untouched until a recovery option is chosen.
type RecoveryRequiredError struct {
	Cause   error
	Options []string
}

func (e *RecoveryRequiredError) Error() string {
	return fmt.Sprintf("%s: %v", ErrMsgRecoveryRequired, e.Cause)
}

// Unwrap exposes both ErrCorruptSave and the underlying cause
func (e *RecoveryRequiredError) Unwrap() []error {
	return []error{domain.ErrCorruptSave, e.Cause}
}
