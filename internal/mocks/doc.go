// Package mocks provides shared test doubles for the store, service and
// events interfaces.
//
// Store and emitter mocks use function fields and fall back to an
// in-memory implementation when a field is nil:
//
//	users := mocks.NewMockUserStore(existing)
//	users.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
//	    return nil, errors.New("db down")
//	}
//
// Service mocks embed testify's mock.Mock and are configured with On/Return.
package mocks
