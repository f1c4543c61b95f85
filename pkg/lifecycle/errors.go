package lifecycle

import "errors"

var (
	// ErrBeaconAlreadyRetired is returned by Beacon.Die when the beacon has
	// already been retired once.
	ErrBeaconAlreadyRetired = errors.New("lifecycle: beacon already retired")

	// ErrLifecycleFinalized is returned by CreateBeacon once the shutdown
	// coordinator has started invoking shutdown handlers. Beacons created
	// before that point, even during the grace period, always succeed.
	ErrLifecycleFinalized = errors.New("lifecycle: cannot create beacon, shutdown is finalizing")
)
