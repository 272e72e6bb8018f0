package entity

import (
	"time"
)

const (
	OrderStatusPending   = "Pending"
	OrderStatusConfirmed = "Confirmed"
	OrderStatusCompleted = "Completed"
	OrderStatusCancelled = "Cancelled"
)

var OrderStatuses = []string{OrderStatusPending, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled}

// orderTransitions is the legal state table. Completed and Cancelled are terminal.
var orderTransitions = map[string][]string{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusCompleted, OrderStatusCancelled},
}

var MeetingLocations = []string{
	"Main Gate",
	"Library",
	"Canteen",
	"Admin Building",
	"Hostel Block A",
	"Hostel Block B",
	"Sports Complex",
	"Academic Block 1",
	"Academic Block 2",
	"Parking Area",
}

var MeetingTimeSlots = []string{
	"09:00 AM - 10:00 AM",
	"10:00 AM - 11:00 AM",
	"11:00 AM - 12:00 PM",
	"12:00 PM - 01:00 PM",
	"01:00 PM - 02:00 PM",
	"02:00 PM - 03:00 PM",
	"03:00 PM - 04:00 PM",
	"04:00 PM - 05:00 PM",
	"05:00 PM - 06:00 PM",
}

const PaymentCashOnDelivery = "Cash on Delivery"

var PaymentMethods = []string{PaymentCashOnDelivery, "UPI", "Bank Transfer"}

const MaxMeetingNotesLength = 500

type MeetingDetails struct {
	Location string    `json:"location" firestore:"location"`
	Date     time.Time `json:"date" firestore:"date"`
	TimeSlot string    `json:"time_slot" firestore:"timeSlot"`
	Notes    string    `json:"notes,omitempty" firestore:"notes,omitempty"`
}

type Order struct {
	ID             string         `json:"id" firestore:"id"`
	BuyerID        string         `json:"buyer_id" firestore:"buyerId"`
	SellerID       string         `json:"seller_id" firestore:"sellerId"`
	ProductID      string         `json:"product_id" firestore:"productId"`
	Quantity       int            `json:"quantity" firestore:"quantity"`
	TotalAmount    float64        `json:"total_amount" firestore:"totalAmount"`
	MeetingDetails MeetingDetails `json:"meeting_details" firestore:"meetingDetails"`
	Status         string         `json:"status" firestore:"status"`
	PaymentMethod  string         `json:"payment_method" firestore:"paymentMethod"`

	CompletedAt *time.Time `json:"completed_at,omitempty" firestore:"completedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty" firestore:"cancelledAt,omitempty"`
	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
}

// CanTransition reports whether the state table allows from → to.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsTerminalOrderStatus(s string) bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

func IsValidOrderStatus(s string) bool {
	return contains(OrderStatuses, s)
}

func IsValidMeetingLocation(l string) bool {
	return contains(MeetingLocations, l)
}

func IsValidTimeSlot(s string) bool {
	return contains(MeetingTimeSlots, s)
}

func IsValidPaymentMethod(m string) bool {
	return contains(PaymentMethods, m)
}
