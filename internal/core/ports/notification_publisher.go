package ports

import "context"

// AssignedOrder is one order's summary inside an aggregated runner assignment
// notification.
type AssignedOrder struct {
	OrderID      int64    `json:"orderId"`
	Building     string   `json:"building"`
	RoomType     string   `json:"roomType"`
	RoomNumber   string   `json:"roomNumber"`
	DeliveryTime string   `json:"deliveryTime"`
	Items        []string `json:"items"`
	TotalAmount  float64  `json:"totalAmount"`
}

// RunnerAssignmentNotification is the aggregated "you have deliveries"
// notification published once per runner after a dispatch run.
type RunnerAssignmentNotification struct {
	RunnerEmail string          `json:"runnerEmail"`
	Orders      []AssignedOrder `json:"orders"`
}

// CollectionReadyVariables carries the template variables of a
// collection-ready notification.
type CollectionReadyVariables struct {
	OrderID      int64  `json:"orderId"`
	Building     string `json:"building"`
	RoomType     string `json:"roomType"`
	RoomNumber   string `json:"roomNumber"`
	DeliveryTime string `json:"deliveryTime"`
}

// CollectionReadyNotification tells a runner that an order is ready for
// collection at the merchant. The email service downstream renders the
// template.
type CollectionReadyNotification struct {
	To        string                   `json:"to"`
	Subject   string                   `json:"subject"`
	Template  string                   `json:"template"`
	Variables CollectionReadyVariables `json:"variables"`
}

// NotificationPublisher publishes runner-facing notifications to the message
// bus. Publication is fire-and-forget relative to assignment transactions: a
// publish failure is logged by the caller and never rolls back a committed
// assignment.
type NotificationPublisher interface {
	// PublishRunnerAssignment publishes one aggregated assignment
	// notification for a runner.
	PublishRunnerAssignment(ctx context.Context, notification RunnerAssignmentNotification) error

	// PublishCollectionReady publishes a collection-ready notification for a
	// single order.
	PublishCollectionReady(ctx context.Context, notification CollectionReadyNotification) error
}
