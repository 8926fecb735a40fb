package constant

type RequestStatus int

const (
	RequestStatusPending   RequestStatus = 1
	RequestStatusApproved  RequestStatus = 2
	RequestStatusDeclined  RequestStatus = 3
	RequestStatusFulfilled RequestStatus = 4
)

var RequestStatusName = map[RequestStatus]string{
	RequestStatusPending:   "pending",
	RequestStatusApproved:  "approved",
	RequestStatusDeclined:  "declined",
	RequestStatusFulfilled: "fulfilled",
}
