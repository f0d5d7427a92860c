package platform

// CloudSyncState tracks the remote delivery watermark and backlog: a
// connection flag, the last-synced clock value, outstanding backlog
// bytes, and whether a backlog redemption is in progress.
type CloudSyncState struct {
	Connected            bool
	LastSyncTimestamp    uint64
	BacklogBytes         uint64
	RedemptionInProgress bool
}

// NewCloudSyncState returns a disconnected, zeroed state.
func NewCloudSyncState() *CloudSyncState {
	return &CloudSyncState{}
}

// UpdateWatermark advances the last-synced clock value. Called by the
// transfer gate's step 5 once it has triggered the Ethernet transmit,
// whether or not the remote delivery succeeded.
func (s *CloudSyncState) UpdateWatermark(timestamp uint64) {
	s.LastSyncTimestamp = timestamp
}

// AddBacklog records bytes that could not be delivered while disconnected.
func (s *CloudSyncState) AddBacklog(bytes uint64) {
	s.BacklogBytes += bytes
}

// HandleReconnect marks the link connected and begins backlog redemption
// if it was previously down. It returns true if a reconnect transition
// actually occurred, so callers can log or emit a marker exactly once.
func (s *CloudSyncState) HandleReconnect() bool {
	if s.Connected {
		return false
	}
	s.Connected = true
	s.RedemptionInProgress = true
	return true
}

// FinishRedemption clears the backlog and the in-progress flag once all
// backlogged bytes have been delivered.
func (s *CloudSyncState) FinishRedemption() {
	s.BacklogBytes = 0
	s.RedemptionInProgress = false
}
