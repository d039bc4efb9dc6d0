package offer

import "github.com/m04kA/Blane-SchedulingService/pkg/txmanager"

// DBExecutor интерфейс для выполнения запросов к БД
// Поддерживает *sql.DB и *sql.Tx (через txmanager.GetExecutor)
type DBExecutor = txmanager.DBExecutor
