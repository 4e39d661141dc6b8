package teststore

import (
	"go.uber.org/fx"
)

// FXModule defines the Fx module for the test case store.
//
// The module provides the NewConfig and NewStore factories to the
// dependency injection container. The store holds no connections, so no
// lifecycle hooks are required.
//
// Usage:
//
//	app := fx.New(
//	    teststore.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("teststore",
	fx.Provide(
		NewConfig,
		NewStore,
	),
)
