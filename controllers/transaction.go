package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/usualmarts/sfds-api/db"
	"github.com/usualmarts/sfds-api/models"
	"github.com/usualmarts/sfds-api/query"
)

// GetTransactions lists ledger entries. is_deleted is presence-checked, so
// is_deleted=false really narrows to live rows instead of being ignored.
func GetTransactions(c *fiber.Ctx) error {
	filter := query.TransactionFilter{
		TransactionID: optionalUint(c, "transaction_id"),
		UserID:        optionalUint(c, "user_id"),
		Location:      optionalString(c, "location"),
	}

	if v := c.Query("amount"); v != "" {
		amount, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid amount"})
		}
		filter.Amount = &amount
	}
	if v := c.Query("discount"); v != "" {
		discount, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid discount"})
		}
		filter.Discount = &discount
	}
	if v := c.Query("method"); v != "" {
		method := models.TransactionMethod(strings.ToUpper(v))
		if !method.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid method"})
		}
		filter.Method = &method
	}
	if v := c.Query("is_deleted"); v != "" {
		isDeleted, err := strconv.ParseBool(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid is_deleted"})
		}
		filter.IsDeleted = &isDeleted
	}
	if v := c.Query("date_charged"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid date_charged, expected YYYY-MM-DD"})
		}
		filter.DateCharged = &d
	}

	filtered := func() *gorm.DB {
		return filter.Apply(db.DB.Model(&models.Transaction{}))
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	q, err := query.ApplySort(filtered(), c.Query("sort", "date_charged"), c.Query("order", "asc"), query.TransactionSortOptions)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}

	var transactions []models.Transaction
	if err := query.Paginate(q.Preload("User"), c.QueryInt("offset", query.DefaultOffset), c.QueryInt("limit", query.DefaultLimit)).
		Find(&transactions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{
		"total":        total,
		"transactions": transactions,
	})
}

type TransactionCreateInput struct {
	UserID      uint                      `json:"user_id" form:"user_id"`
	Amount      float64                   `json:"amount" form:"amount"`
	Discount    float64                   `json:"discount" form:"discount"`
	Method      *models.TransactionMethod `json:"method" form:"method"`
	Location    string                    `json:"location" form:"location"`
	DateCharged string                    `json:"date_charged" form:"date_charged"`
}

// CreateTransaction posts a ledger entry for an existing user.
func CreateTransaction(c *fiber.Ctx) error {
	input := new(TransactionCreateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cannot parse request body"})
	}

	if input.Method != nil && !input.Method.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid method"})
	}

	var user models.User
	if db.DB.Where("id = ?", input.UserID).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "User not found"})
	}

	transaction := models.Transaction{
		UserID:      input.UserID,
		Amount:      input.Amount,
		Discount:    input.Discount,
		Method:      input.Method,
		Location:    input.Location,
		DateCharged: time.Now(),
		Reference:   uuid.NewString(),
	}
	if input.DateCharged != "" {
		d, err := time.Parse("2006-01-02", input.DateCharged)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid date_charged, expected YYYY-MM-DD"})
		}
		transaction.DateCharged = d
	}

	if err := db.DB.Create(&transaction).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(transaction)
}

type TransactionUpdateInput struct {
	ID       uint                      `json:"id" form:"id"`
	UserID   *uint                     `json:"user_id" form:"user_id"`
	Amount   *float64                  `json:"amount" form:"amount"`
	Discount *float64                  `json:"discount" form:"discount"`
	Method   *models.TransactionMethod `json:"method" form:"method"`
	Location *string                   `json:"location" form:"location"`
	Refund   *bool                     `json:"refund" form:"refund"`
}

// UpdateTransaction replaces only the supplied fields. A supplied user_id
// must match the entry's current owner.
func UpdateTransaction(c *fiber.Ctx) error {
	input := new(TransactionUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cannot parse request body"})
	}

	var transaction models.Transaction
	if db.DB.Where("id = ?", input.ID).First(&transaction).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Transaction not found"})
	}

	updates := map[string]interface{}{}
	if input.UserID != nil {
		var user models.User
		if db.DB.Where("id = ?", *input.UserID).First(&user).RowsAffected == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "User not found"})
		}
		if transaction.UserID != *input.UserID {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "User id does not match"})
		}
		updates["user_id"] = *input.UserID
	}
	if input.Refund != nil {
		updates["refund"] = *input.Refund
	}
	if input.Amount != nil {
		updates["amount"] = *input.Amount
	}
	if input.Discount != nil {
		updates["discount"] = *input.Discount
	}
	if input.Method != nil {
		if !input.Method.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid method"})
		}
		updates["method"] = *input.Method
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&transaction).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"message": "Transaction updated successfully"})
}

// DeleteTransaction soft-deletes: the row stays, only is_deleted flips.
func DeleteTransaction(c *fiber.Ctx) error {
	var transaction models.Transaction
	if err := db.DB.First(&transaction, c.Params("transaction_id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Transaction not found"})
	}

	if err := db.DB.Model(&transaction).Update("is_deleted", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Transaction deleted successfully"})
}
