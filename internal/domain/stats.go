package domain

// SessionStats are aggregate statistics derived from the stored session
// collection. They are pure functions of the store's current contents,
// recomputed on demand rather than incrementally maintained.
type SessionStats struct {
	TotalSessions int `json:"total_sessions"`

	// AverageIntensityReduction is the mean of original minus balanced
	// intensity over all stored sessions. Zero when the store is empty.
	AverageIntensityReduction float64 `json:"average_intensity_reduction"`

	// MostCommonDistortion is the name of the distortion detected most often
	// across all stored sessions. Empty when no distortions were detected.
	MostCommonDistortion string `json:"most_common_distortion"`

	// SessionsThisWeek counts sessions created within the last seven days.
	SessionsThisWeek int `json:"sessions_this_week"`
}
