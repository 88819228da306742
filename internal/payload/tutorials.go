package payload

type CreateTeacherRequest struct {
	Name           string   `json:"name"           validate:"required"`
	Email          string   `json:"email"          validate:"required,email"`
	Phone          string   `json:"phone"          validate:"required"`
	Location       string   `json:"location"       validate:"required"`
	Qualifications string   `json:"qualifications" validate:"required"`
	Subjects       []string `json:"subjects"`
	Experience     string   `json:"experience"`
	Bio            string   `json:"bio"`
	HourlyRate     int64    `json:"hourlyRate"`
}

type UpdateTeacherRequest struct {
	Name           *string   `json:"name,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	Location       *string   `json:"location,omitempty"`
	Qualifications *string   `json:"qualifications,omitempty"`
	Subjects       *[]string `json:"subjects,omitempty"`
	Experience     *string   `json:"experience,omitempty"`
	Bio            *string   `json:"bio,omitempty"`
	HourlyRate     *int64    `json:"hourlyRate,omitempty"`
}

type CreateGuardianRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"    validate:"required"`
	Location string `json:"location" validate:"required"`
}

type UpdateGuardianRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
}

type CreatePostRequest struct {
	Subject  string `json:"subject"  validate:"required"`
	Class    string `json:"class"    validate:"required"`
	Board    string `json:"board"`
	Location string `json:"location" validate:"required"`
	Budget   int64  `json:"budget"   validate:"gte=0"`
	Details  string `json:"details"`
}

type UpdatePostRequest struct {
	Subject  *string `json:"subject,omitempty"`
	Class    *string `json:"class,omitempty"`
	Board    *string `json:"board,omitempty"`
	Location *string `json:"location,omitempty"`
	Budget   *int64  `json:"budget,omitempty"`
	Details  *string `json:"details,omitempty"`
}

type UpdatePostStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type WithdrawRequest struct {
	Note string `json:"note"`
}
