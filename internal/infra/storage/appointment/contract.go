package appointment

import "github.com/coiffurelab/salon-booking-service/pkg/dbmetrics"

// DBExecutor is re-exported from dbmetrics so repository constructors accept
// both the instrumented pool and a transaction.
type DBExecutor = dbmetrics.DBExecutor
