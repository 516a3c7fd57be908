package builder

import (
	"fmt"

	"github.com/unidoc/unioffice/common/license"
	"go.uber.org/zap"
)

// setupUnidocLicense activates the UniOffice metered license. unioffice
// refuses to open or save documents without one, so an empty key leaves
// DOCX parsing and export non-functional; the server still runs for the
// remaining formats.
func setupUnidocLicense(key string, logger *zap.Logger) error {
	if key == "" {
		logger.Warn("UNIDOC_LICENSE_API_KEY not set; DOCX upload and export will be unavailable")
		return nil
	}

	if err := license.SetMeteredKey(key); err != nil {
		return fmt.Errorf("set unidoc metered key: %w", err)
	}

	logger.Info("UniDoc license activated")
	return nil
}
