package controller

import (
	"net/http"
	"strconv"

	"github.com/microcosm-cc/catalogue/audit"
	e "github.com/microcosm-cc/catalogue/errors"
	"github.com/microcosm-cc/catalogue/models"
)

// CompaniesController handles the record company collection
type CompaniesController struct {
	catalog *models.Catalog
}

// CompaniesHandler routes requests for /api/v1/companies
func CompaniesHandler(catalog *models.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := MakeContext(r, w)
		ctl := CompaniesController{catalog: catalog}

		switch c.GetHTTPMethod() {
		case http.MethodGet:
			ctl.ReadMany(c)
		case http.MethodPost:
			ctl.Create(c)
		default:
			c.RespondWithNotImplemented()
		}
	}
}

// ReadMany lists every record company
func (ctl *CompaniesController) ReadMany(c *Context) {
	ms, status, err := ctl.catalog.AllCompanies(c.Request.Context())
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	c.RespondWithData(ms)
}

// Create adds a record company
func (ctl *CompaniesController) Create(c *Context) {
	var req models.AddCompanyRequest
	if err := c.Fill(&req); err != nil {
		c.RespondWithErrorDetail(err, http.StatusBadRequest)
		return
	}

	m, status, err := ctl.catalog.AddCompany(c.Request.Context(), req)
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	audit.Create("company", m.ID.Hex())
	c.RespondWithData(m)
}

// CompaniesFoundedHandler routes requests for
// /api/v1/companies/founded?min=YYYY&max=YYYY
func CompaniesFoundedHandler(catalog *models.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := MakeContext(r, w)

		if c.GetHTTPMethod() != http.MethodGet {
			c.RespondWithNotImplemented()
			return
		}

		query := c.Request.URL.Query()
		min, err := strconv.Atoi(query.Get("min"))
		if err != nil {
			c.RespondWithErrorDetail(
				e.New("CompaniesFoundedHandler", e.ValidationError,
					"min must be a year"),
				http.StatusBadRequest,
			)
			return
		}
		max, err := strconv.Atoi(query.Get("max"))
		if err != nil {
			c.RespondWithErrorDetail(
				e.New("CompaniesFoundedHandler", e.ValidationError,
					"max must be a year"),
				http.StatusBadRequest,
			)
			return
		}

		ms, status, err := catalog.CompaniesByFoundedYear(
			c.Request.Context(), min, max)
		if err != nil {
			c.RespondWithErrorDetail(err, status)
			return
		}

		c.RespondWithData(ms)
	}
}

// CompanyController handles a single record company
type CompanyController struct {
	catalog *models.Catalog
}

// CompanyHandler routes requests for /api/v1/companies/{company_id}
func CompanyHandler(catalog *models.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := MakeContext(r, w)
		ctl := CompanyController{catalog: catalog}

		switch c.GetHTTPMethod() {
		case http.MethodGet:
			ctl.Read(c)
		case http.MethodPut:
			ctl.Update(c)
		case http.MethodDelete:
			ctl.Delete(c)
		default:
			c.RespondWithNotImplemented()
		}
	}
}

// companyDetail is a record company plus the album count derived by query
type companyDetail struct {
	models.RecordCompany
	NumOfAlbums int64 `json:"numOfAlbums"`
}

// Read fetches one record company with its derived album count
func (ctl *CompanyController) Read(c *Context) {
	m, status, err := ctl.catalog.GetCompanyByID(
		c.Request.Context(), c.RouteVars["company_id"])
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	n, status, err := ctl.catalog.NumOfAlbumsByCompany(c.Request.Context(), m.ID)
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	c.RespondWithData(companyDetail{RecordCompany: m, NumOfAlbums: n})
}

// Update edits the supplied fields of one record company
func (ctl *CompanyController) Update(c *Context) {
	var req models.EditCompanyRequest
	if err := c.Fill(&req); err != nil {
		c.RespondWithErrorDetail(err, http.StatusBadRequest)
		return
	}
	req.ID = c.RouteVars["company_id"]

	m, status, err := ctl.catalog.EditCompany(c.Request.Context(), req)
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	audit.Update("company", m.ID.Hex())
	c.RespondWithData(m)
}

// Delete removes one record company, cascading to its albums and songs
func (ctl *CompanyController) Delete(c *Context) {
	m, status, err := ctl.catalog.RemoveCompany(
		c.Request.Context(), c.RouteVars["company_id"])
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	audit.Delete("company", m.ID.Hex())
	c.RespondWithData(m)
}
