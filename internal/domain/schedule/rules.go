package schedule

// Rules bundles the static configuration loaded once at startup.
type Rules struct {
	Catalog  *Catalog
	Weekly   WeeklySchedule
	Settings Settings
}

func DefaultRules() *Rules {
	return &Rules{
		Catalog:  DefaultCatalog(),
		Weekly:   DefaultWeeklySchedule(),
		Settings: DefaultSettings(),
	}
}
