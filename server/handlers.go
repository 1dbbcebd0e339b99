package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rshep3087/bizmargin/engine"
)

type VersionResponse struct {
	Data VersionObject `json:"data"`
}

type VersionObject struct {
	Version string `json:"version"`
}

func getVersion(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, VersionResponse{
			Data: VersionObject{Version: version},
		})
	}
}

type HealthResponse struct {
	Status string `json:"status"`
}

// GetHealth reports that the service is up.
func GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Category describes one of the fixed categories.
type Category struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Question string `json:"question"`
}

type CategoryListResponse struct {
	Data []Category `json:"data"`
}

// GetCategories lists the expense categories followed by the income categories.
func GetCategories(c *gin.Context) {
	categories := make([]Category, 0, len(engine.Categories()))
	for _, cat := range engine.Categories() {
		kind := "expense"
		if cat.IsIncome() {
			kind = "income"
		}
		categories = append(categories, Category{
			Key:      cat.Key(),
			Name:     cat.String(),
			Kind:     kind,
			Question: cat.Prompt(),
		})
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: categories})
}

type TierListResponse struct {
	Data []engine.Tier `json:"data"`
}

// GetTiers lists the advisory tiers in evaluation order.
func GetTiers(c *gin.Context) {
	c.JSON(http.StatusOK, TierListResponse{Data: engine.Tiers()})
}

// EvaluationRequest is the body of POST /v1/evaluations.
type EvaluationRequest struct {
	// Mode is "direct" (default) or "monthly".
	Mode     string               `json:"mode"`
	Expenses map[string]rawAmount `json:"expenses"`
	Income   map[string]rawAmount `json:"income"`
}

var errWrongSection = errors.New("category is listed in the wrong section")

// rawInputs validates the category keys and collects the raw text.
func (r EvaluationRequest) rawInputs() (engine.RawInputs, error) {
	raw := make(engine.RawInputs, len(r.Expenses)+len(r.Income))

	collect := func(values map[string]rawAmount, income bool) error {
		for key, v := range values {
			cat, err := engine.ParseCategory(key)
			if err != nil {
				return err
			}
			if cat.IsIncome() != income {
				return fmt.Errorf("%w: %q", errWrongSection, key)
			}
			raw[cat] = string(v)
		}
		return nil
	}

	if err := collect(r.Expenses, false); err != nil {
		return nil, err
	}
	if err := collect(r.Income, true); err != nil {
		return nil, err
	}

	return raw, nil
}

// CreateEvaluation evaluates the posted amounts. Each request is evaluated on
// its own; nothing is stored.
func CreateEvaluation(c *gin.Context) {
	var req EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newError(c, http.StatusBadRequest, "The request body is not valid: %s", err)
		return
	}

	scale, err := engine.ParsePeriodScale(req.Mode)
	if err != nil {
		newError(c, http.StatusBadRequest, "%s", err)
		return
	}

	raw, err := req.rawInputs()
	if err != nil {
		newError(c, http.StatusBadRequest, "%s", err)
		return
	}

	c.JSON(http.StatusOK, engine.Evaluate(raw, scale))
}
