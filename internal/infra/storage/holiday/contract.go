package holiday

import "github.com/coiffurelab/salon-booking-service/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
