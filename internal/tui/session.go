package tui

import "sync/atomic"

var sessionOperatorID int64

func setSessionOperatorID(operatorID int64) {
	atomic.StoreInt64(&sessionOperatorID, operatorID)
}

func getSessionOperatorID() int64 {
	return atomic.LoadInt64(&sessionOperatorID)
}

func clearSessionOperatorID() {
	atomic.StoreInt64(&sessionOperatorID, 0)
}
