package api

import (
	"fmt"
	"time"
)

// Deployment is a single published instance of an application, as returned
// by the deployment API. URL is empty while the deployment has not finished
// uploading.
type Deployment struct {
	UID     string `json:"uid"`
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	Created int64  `json:"created"` // milliseconds since epoch
}

// CreatedTime returns the creation timestamp as a time.Time.
func (d Deployment) CreatedTime() time.Time {
	return time.UnixMilli(d.Created)
}

// User is the account the current token belongs to.
type User struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

type listResponse struct {
	Deployments []Deployment `json:"deployments"`
}

// validateDeployment rejects records the rest of the program cannot work
// with. The API is the trust boundary; nothing downstream re-checks shapes.
func validateDeployment(i int, d Deployment) error {
	if d.UID == "" {
		return fmt.Errorf("deployment %d: missing uid", i)
	}
	if d.Name == "" {
		return fmt.Errorf("deployment %s: missing name", d.UID)
	}
	if d.Created <= 0 {
		return fmt.Errorf("deployment %s: invalid created timestamp %d", d.UID, d.Created)
	}
	return nil
}
