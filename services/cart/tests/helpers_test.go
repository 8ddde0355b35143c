package tests

import "fmt"

func cartPath(customerID int64, suffix string) string {
	return fmt.Sprintf("/cart/%d%s", customerID, suffix)
}
