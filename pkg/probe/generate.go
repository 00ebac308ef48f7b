package probe

import (
	_ "go.uber.org/mock/gomock"
)

//go:generate mockgen -package mocks -destination mocks/mock_prober.go github.com/kasuboski/mediaindex/pkg/probe Prober
