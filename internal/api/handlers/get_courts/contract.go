package get_courts

import "github.com/m04kA/SMC-CourtBookingService/internal/domain"

// CourtCatalog каталог кортов клуба
type CourtCatalog interface {
	All() []domain.Court
}
