package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/librarium/bibliotheque/internal/audit"
	"github.com/librarium/bibliotheque/internal/circulation"
	"github.com/librarium/bibliotheque/internal/database/loans"
	"github.com/librarium/bibliotheque/internal/entities"
)

// CheckoutRequest is the payload for lending a copy to a member.
type CheckoutRequest struct {
	BookID   uint `json:"book_id"`
	MemberID uint `json:"member_id"`
}

// LoanRequest is the payload for rewriting a loan record directly.
// Normal lending goes through checkout/return; this exists for manual
// corrections by a librarian.
type LoanRequest struct {
	BorrowDate time.Time  `json:"borrow_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`
	BookID     uint       `json:"book_id"`
	MemberID   uint       `json:"member_id"`
}

type LoansController struct {
	repo        *loans.Repository
	circulation *circulation.Service
	auditor     *audit.Service
}

func NewLoansController(repo *loans.Repository, svc *circulation.Service, auditor *audit.Service) *LoansController {
	return &LoansController{
		repo:        repo,
		circulation: svc,
		auditor:     auditor,
	}
}

// ListLoans returns loans, optionally filtered by ?status=open,
// ?status=returned, by book_id or by member_id.
func (controller *LoansController) ListLoans(c *gin.Context) {
	var (
		result []entities.Loan
		err    error
	)
	switch {
	case c.Query("status") == "open":
		result, err = controller.repo.ListOpen()
	case c.Query("status") == "returned":
		result, err = controller.repo.ListReturned()
	case c.Request.URL.Query().Has("book_id"):
		bookID, ok := parseQueryID(c, "book_id")
		if !ok {
			return
		}
		result, err = controller.repo.FindByBookID(bookID)
	case c.Request.URL.Query().Has("member_id"):
		memberID, ok := parseQueryID(c, "member_id")
		if !ok {
			return
		}
		result, err = controller.repo.FindByMemberID(memberID)
	default:
		result, err = controller.repo.ListAll()
	}
	if err != nil {
		respondInternalError(c, err, "list loans")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"loans": result, "count": len(result)})
}

// GetLoan returns one loan by id.
func (controller *LoansController) GetLoan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	loan, err := controller.repo.GetByID(id)
	if err != nil {
		respondInternalError(c, err, "get loan")
		return
	}
	if loan == nil {
		respondNotFound(c, "loan")
		return
	}
	c.IndentedJSON(http.StatusOK, loan)
}

// Checkout lends one copy of a book to a member.
func (controller *LoansController) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	loan, err := controller.circulation.Checkout(req.BookID, req.MemberID)
	var loanID uint
	if loan != nil {
		loanID = loan.ID
	}
	controller.auditor.LogCirculation("checkout",
		loanID, fmt.Sprintf("book %d to member %d", req.BookID, req.MemberID), err)
	if err != nil {
		respondStoreError(c, err, "loan")
		return
	}
	respondCreated(c, loan)
}

// Return closes an open loan and puts the copy back on the shelf.
func (controller *LoansController) Return(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	loan, err := controller.circulation.Return(id)
	controller.auditor.LogCirculation("return", id, "", err)
	if err != nil {
		respondStoreError(c, err, "loan")
		return
	}
	c.IndentedJSON(http.StatusOK, loan)
}

// Overdue lists open loans past their due date as of today.
func (controller *LoansController) Overdue(c *gin.Context) {
	overdue, err := controller.circulation.Overdue(time.Now())
	if err != nil {
		respondInternalError(c, err, "list overdue loans")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"loans": overdue, "count": len(overdue)})
}

// UpdateLoan rewrites a loan record directly, bypassing circulation
// rules. Copy counts are not adjusted here.
func (controller *LoansController) UpdateLoan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	loan := &entities.Loan{
		ID:         id,
		BorrowDate: req.BorrowDate,
		DueDate:    req.DueDate,
		ReturnDate: req.ReturnDate,
		BookID:     req.BookID,
		MemberID:   req.MemberID,
	}
	err := controller.repo.Update(loan)
	controller.auditor.LogCirculation("update", id, "manual correction", err)
	if err != nil {
		respondStoreError(c, err, "loan")
		return
	}
	c.IndentedJSON(http.StatusOK, loan)
}

// DeleteLoan removes a loan record. Copy counts are not adjusted.
func (controller *LoansController) DeleteLoan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := controller.repo.Delete(id)
	controller.auditor.LogCirculation("delete", id, "manual correction", err)
	if err != nil {
		respondStoreError(c, err, "loan")
		return
	}
	respondSuccess(c, "loan deleted")
}
