package handler

import (
	"errors"
	"net/http"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/peegflow-code/PeegFlow-Piloto/internal/apierror"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/middleware"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewFieldErrors(fields))
		return false
	}
	return true
}

// respondError translates the typed service errors into HTTP responses.
// Anything unrecognized is pushed onto the context for the ErrorHandler
// middleware, which logs it and answers 500.
func respondError(c *gin.Context, err error) {
	var validation *apierror.ValidationError
	var conflict *apierror.ConflictError
	var notFound *apierror.NotFoundError
	var stock *apierror.InsufficientStockError
	var auth *apierror.AuthenticationError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(validation.Error()))
	case errors.As(err, &stock):
		c.JSON(http.StatusConflict, gin.H{
			"detail":    stock.Error(),
			"available": stock.Available,
		})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, apierror.New(conflict.Error()))
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, apierror.New(notFound.Error()))
	case errors.As(err, &auth):
		c.JSON(http.StatusUnauthorized, apierror.New(auth.Error()))
	default:
		_ = c.Error(err)
	}
}

// pathUUID parses the :id path param, answering 400 on garbage.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// companyID extracts the tenant from the validated JWT claims.
func companyID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticação necessária"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.CompanyID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// actorID extracts the authenticated user from the JWT claims.
func actorID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticação necessária"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// dateRange parses the from/to query params (YYYY-MM-DD). The "to" bound is
// widened to the end of its day so a single-day range covers the whole day.
func dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	const layout = "2006-01-02"

	fromStr := c.DefaultQuery("from", time.Now().UTC().AddDate(0, -1, 0).Format(layout))
	toStr := c.DefaultQuery("to", time.Now().UTC().Format(layout))

	from, err := time.Parse(layout, fromStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parâmetro 'from' inválido (use AAAA-MM-DD)"))
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(layout, toStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parâmetro 'to' inválido (use AAAA-MM-DD)"))
		return time.Time{}, time.Time{}, false
	}
	return from, to.Add(24*time.Hour - time.Nanosecond), true
}
