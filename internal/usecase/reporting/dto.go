package reporting

type CommissionReportRequest struct {
	DriverID  string `form:"driverId" validate:"omitempty,uuid"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Format    string `form:"format" validate:"omitempty,oneof=json pdf xlsx"`
}

type InvoiceReportRequest struct {
	Format string `form:"format" validate:"omitempty,oneof=json pdf xlsx"`
}
