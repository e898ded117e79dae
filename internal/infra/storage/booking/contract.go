package booking

import "github.com/m04kA/SMC-CourtBookingService/pkg/txmanager"

// Переиспользуем интерфейс исполнителя запросов из txmanager: *sql.DB или *sql.Tx из контекста
type DBExecutor = txmanager.DBExecutor
