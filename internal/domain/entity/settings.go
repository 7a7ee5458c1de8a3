package entity

// Settings are a user's dashboard preferences.
type Settings struct {
	DarkMode           bool        `json:"dark_mode"`
	CompactView        bool        `json:"compact_view"`
	EmailNotifications bool        `json:"email_notifications"`
	ShipmentUpdates    bool        `json:"shipment_updates"`
	MarketingEmails    bool        `json:"marketing_emails"`
	WeeklyReports      bool        `json:"weekly_reports"`
	DefaultServiceType ServiceType `json:"default_service_type"`
	AutoGenerateLabel  bool        `json:"auto_generate_label"`
	Currency           string      `json:"currency"`
	Timezone           string      `json:"timezone"`
	ShareAnalytics     bool        `json:"share_analytics"`
	TwoFactorAuth      bool        `json:"two_factor_auth"`
}

// DefaultSettings returns the hardcoded fallback preferences.
func DefaultSettings() Settings {
	return Settings{
		DarkMode:           true,
		CompactView:        false,
		EmailNotifications: true,
		ShipmentUpdates:    true,
		MarketingEmails:    false,
		WeeklyReports:      true,
		DefaultServiceType: ServiceStandard,
		AutoGenerateLabel:  true,
		Currency:           "INR",
		Timezone:           "Asia/Kolkata",
		ShareAnalytics:     true,
		TwoFactorAuth:      false,
	}
}

// ResolveSettings picks the effective preferences: the server value wins over a client
// cached copy, which wins over the hardcoded defaults.
func ResolveSettings(server, cached *Settings) Settings {
	switch {
	case server != nil:
		return server.normalized()
	case cached != nil:
		return cached.normalized()
	default:
		return DefaultSettings()
	}
}

// SettingsPatch carries a partial update; nil fields are left untouched.
type SettingsPatch struct {
	DarkMode           *bool        `json:"dark_mode,omitempty"`
	CompactView        *bool        `json:"compact_view,omitempty"`
	EmailNotifications *bool        `json:"email_notifications,omitempty"`
	ShipmentUpdates    *bool        `json:"shipment_updates,omitempty"`
	MarketingEmails    *bool        `json:"marketing_emails,omitempty"`
	WeeklyReports      *bool        `json:"weekly_reports,omitempty"`
	DefaultServiceType *ServiceType `json:"default_service_type,omitempty"`
	AutoGenerateLabel  *bool        `json:"auto_generate_label,omitempty"`
	Currency           *string      `json:"currency,omitempty"`
	Timezone           *string      `json:"timezone,omitempty"`
	ShareAnalytics     *bool        `json:"share_analytics,omitempty"`
	TwoFactorAuth      *bool        `json:"two_factor_auth,omitempty"`
}

// Apply returns a copy of s with the patch applied.
func (p SettingsPatch) Apply(s Settings) Settings {
	setBool(&s.DarkMode, p.DarkMode)
	setBool(&s.CompactView, p.CompactView)
	setBool(&s.EmailNotifications, p.EmailNotifications)
	setBool(&s.ShipmentUpdates, p.ShipmentUpdates)
	setBool(&s.MarketingEmails, p.MarketingEmails)
	setBool(&s.WeeklyReports, p.WeeklyReports)
	setBool(&s.AutoGenerateLabel, p.AutoGenerateLabel)
	setBool(&s.ShareAnalytics, p.ShareAnalytics)
	setBool(&s.TwoFactorAuth, p.TwoFactorAuth)
	if p.DefaultServiceType != nil && p.DefaultServiceType.IsValid() {
		s.DefaultServiceType = *p.DefaultServiceType
	}
	if p.Currency != nil && *p.Currency != "" {
		s.Currency = *p.Currency
	}
	if p.Timezone != nil && *p.Timezone != "" {
		s.Timezone = *p.Timezone
	}

	return s
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// normalized fills blank string fields from the defaults.
func (s Settings) normalized() Settings {
	def := DefaultSettings()
	if !s.DefaultServiceType.IsValid() {
		s.DefaultServiceType = def.DefaultServiceType
	}
	if s.Currency == "" {
		s.Currency = def.Currency
	}
	if s.Timezone == "" {
		s.Timezone = def.Timezone
	}

	return s
}
