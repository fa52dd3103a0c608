package record

// Director is a person holding a directorship in a Record.
type Director struct {
	DIN             string `json:"din"`
	Name            string `json:"director_name"`
	Designation     string `json:"designation"`
	AppointmentDate string `json:"appointment_date"`
}

// Record captures one company entry of the FPO dataset.
type Record struct {
	ID                 int        `json:"data_id"`
	NumberOfMembers    int        `json:"data_number_of_members"`
	CompanyName        string     `json:"data_company_name"`
	RegisteredAddress  string     `json:"data_registered_address"`
	CIN                string     `json:"data_cin"`
	ActiveCompliance   string     `json:"data_active_compliance"`
	ROCCode            string     `json:"data_roc_code"`
	RegistrationNumber int        `json:"data_registration_number"`
	Directors          []Director `json:"data_directors"`
}
