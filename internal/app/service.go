package app

import (
	"github.com/spf13/afero"

	"geometa/internal/adapters"
	"geometa/internal/core"
	"geometa/internal/ports"
)

type Service struct {
	Fs            afero.Fs
	Extractor     ports.ExtractorPort
	Store         ports.DocumentStorePort
	ProfileSource ports.ProfileSourcePort
	Walker        ports.WalkerPort
	Merger        core.Merger
	Validator     core.DocumentValidator
}

func NewService(profilePath string) Service {
	fs := afero.NewOsFs()
	return Service{
		Fs:            fs,
		Extractor:     adapters.NewExtractorAdapter(),
		Store:         adapters.NewDocumentStoreAdapter(fs),
		ProfileSource: adapters.NewProfileSourceAdapter(profilePath),
		Walker:        adapters.NewWalkerAdapter(),
		Merger:        core.NewMerger(),
		Validator:     core.NewDocumentValidator(),
	}
}
