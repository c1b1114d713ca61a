package models

// Job представляет вакансию доски объявлений.
// Поля зарплат и даты истечения хранятся строками, формат задает клиент.
type Job struct {
	ID              int      `json:"id"`
	Title           string   `json:"title"`
	Category        string   `json:"category"`
	CompanyName     string   `json:"companyName"`
	Location        string   `json:"location"`
	CompanyLogo     *string  `json:"companyLogo,omitempty"`
	Description     *string  `json:"description,omitempty"`
	MinSalary       *string  `json:"minSalary,omitempty"`
	MaxSalary       *string  `json:"maxSalary,omitempty"`
	Experience      string   `json:"experience"`
	Years           *string  `json:"years,omitempty"`
	EmploymentTypes []string `json:"employmentTypes,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	ExpiryDate      *string  `json:"expiryDate,omitempty"`
	Featured        bool     `json:"featured"`
	Urgent          bool     `json:"urgent"`
}

// UpdateJobEntry частичное обновление вакансии, nil-поля не изменяются.
type UpdateJobEntry struct {
	Title           *string  `json:"title"`
	Category        *string  `json:"category"`
	CompanyName     *string  `json:"companyName"`
	Location        *string  `json:"location"`
	CompanyLogo     *string  `json:"companyLogo"`
	Description     *string  `json:"description"`
	MinSalary       *string  `json:"minSalary"`
	MaxSalary       *string  `json:"maxSalary"`
	Experience      *string  `json:"experience"`
	Years           *string  `json:"years"`
	EmploymentTypes []string `json:"employmentTypes"`
	Skills          []string `json:"skills"`
	ExpiryDate      *string  `json:"expiryDate"`
	Featured        *bool    `json:"featured"`
	Urgent          *bool    `json:"urgent"`
}

// UpdateProfileEntry частичное обновление анкеты пользователя, nil-поля не изменяются.
type UpdateProfileEntry struct {
	Name             *string            `json:"name"`
	ProfileImage     *string            `json:"profileImage"`
	About            *string            `json:"about"`
	Skills           []string           `json:"skills"`
	BasicInformation []BasicInformation `json:"basicInformation"`
	Experiences      []Experience       `json:"experiences"`
	Educations       []Education        `json:"educations"`
}
