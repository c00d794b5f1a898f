package model

// ListRequest marks list endpoints. Paging, ordering, and filters are read
// from the raw query string because filter keys are open-ended.
type ListRequest struct{}

func (r *ListRequest) Validate() error {
	return nil
}

// ListUserSkillsRequest lists the associations of one account.
type ListUserSkillsRequest struct {
	UserIDParam
}
