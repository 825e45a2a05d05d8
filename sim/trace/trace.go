package trace

// SessionTrace collects period rows and finished-connection records during
// a simulation run.
type SessionTrace struct {
	Periods     []PeriodRecord
	Connections []ConnectionRecord
}

// NewSessionTrace creates a SessionTrace ready for recording.
func NewSessionTrace() *SessionTrace {
	return &SessionTrace{
		Periods:     make([]PeriodRecord, 0),
		Connections: make([]ConnectionRecord, 0),
	}
}

// RecordPeriod appends a periodic statistics row.
func (st *SessionTrace) RecordPeriod(record PeriodRecord) {
	st.Periods = append(st.Periods, record)
}

// RecordConnection appends a finished-connection record.
func (st *SessionTrace) RecordConnection(record ConnectionRecord) {
	st.Connections = append(st.Connections, record)
}
