package dp

import "context"

// checkCancel reports ctx's error if it has already been cancelled,
// nil otherwise. Kernels call this between time steps, not mid-row.
func checkCancel(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
