package transport

type OrganizationRequest struct {
	CompanyName string `json:"companyName"`
}

type SignupRequest struct {
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Password     string               `json:"password"`
	Tier         string               `json:"tier"`
	Organization *OrganizationRequest `json:"organization,omitempty"`
}

type VerifyRequest struct {
	Code string `json:"code"`
}

type PlanRequest struct {
	Tier string `json:"tier"`
}
