package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RequestTimeoutSeconds == 0 {
		cfg.Server.RequestTimeoutSeconds = 30
	}
	if cfg.Search.RadiusKm == 0 {
		cfg.Search.RadiusKm = 50
	}
	if cfg.Search.MinCandidates == 0 {
		cfg.Search.MinCandidates = 3
	}
	if cfg.Search.FillTarget == 0 {
		cfg.Search.FillTarget = 5
	}
	if cfg.Search.FillTarget < cfg.Search.MinCandidates {
		cfg.Search.FillTarget = cfg.Search.MinCandidates
	}
	if cfg.Search.LookupLimit == 0 {
		cfg.Search.LookupLimit = 10
	}
	if cfg.Search.TextIndex == nil {
		t := true
		cfg.Search.TextIndex = &t
	}
	cfg.Ranking.ApplyDefaults()
}
