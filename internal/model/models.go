package model

// All returns every entity in migration order (referenced tables first)
func All() []interface{} {
	return []interface{}{
		// Independent tables (no foreign keys)
		&AuthUser{},
		&Brand{},
		&Timeline{},
		&Category{},
		&Member{},

		// Tables referencing member / lookups
		&Archive{},
		&Judgement{},
		&ArchiveInterest{},
		&SupportPost{},
		&DeviceToken{},
		&Alarm{},
	}
}
