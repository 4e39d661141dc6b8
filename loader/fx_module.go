package loader

import (
	"go.uber.org/fx"
)

// FXModule defines the Fx module for the corpus loader.
var FXModule = fx.Module("loader",
	fx.Provide(
		NewUploader,
	),
)
