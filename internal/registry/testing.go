package registry

import "github.com/holiman/uint256"

// TotalShare is a test helper that sums every tracked balance. Transfers keep
// the total constant; only construction and first-time owner addition raise it.
func TotalShare(r *Registry) *uint256.Int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := uint256.NewInt(0)
	for _, bal := range r.shares {
		total.Add(total, bal)
	}
	return total
}
