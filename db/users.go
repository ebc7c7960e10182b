package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go-sentinel/types"
)

// GetTrackedUserLocations returns the last known position of every tracked
// user. Documents that fail to convert are skipped.
func GetTrackedUserLocations(client *firestore.Client) ([]types.UserLocation, error) {
	ctx := context.Background()
	var users []types.UserLocation

	iter := client.Collection(userLocationCollection).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating user locations: %w", err)
		}

		var user types.UserLocation
		if err := doc.DataTo(&user); err != nil {
			log.Printf("Warning: skipping user location doc %s: %v", doc.Ref.ID, err)
			continue
		}
		// The document ID is the user's email key.
		user.ID = doc.Ref.ID
		if user.Email == "" {
			user.Email = doc.Ref.ID
		}
		users = append(users, user)
	}

	return users, nil
}

// GetOnlineUserLocations filters tracked users down to the ones whose
// presence heartbeat reports them online. A user with no presence doc is
// treated as offline.
func GetOnlineUserLocations(client *firestore.Client) ([]types.UserLocation, error) {
	users, err := GetTrackedUserLocations(client)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	var online []types.UserLocation
	for _, user := range users {
		presence, err := getPresence(ctx, client, user.ID)
		if err != nil {
			if status.Code(err) != codes.NotFound {
				log.Printf("Warning: could not read presence for %s: %v", user.ID, err)
			}
			continue
		}
		if presence.Online {
			online = append(online, user)
		}
	}

	return online, nil
}

// SweepStalePresence marks users offline whose heartbeat is older than ttl.
// Returns the number of users swept.
func SweepStalePresence(client *firestore.Client, ttl time.Duration) (int, error) {
	users, err := GetTrackedUserLocations(client)
	if err != nil {
		return 0, err
	}

	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-ttl)
	swept := 0

	for _, user := range users {
		presence, err := getPresence(ctx, client, user.ID)
		if err != nil {
			continue
		}
		if !presence.Online {
			continue
		}

		lastSeen, err := time.Parse(time.RFC3339, presence.LastSeen)
		if err != nil {
			log.Printf("Warning: could not parse lastSeen %q for %s", presence.LastSeen, user.ID)
			continue
		}
		if lastSeen.After(cutoff) {
			continue
		}

		docRef := client.Collection(userLocationCollection).Doc(user.ID).
			Collection(presenceSubcollection).Doc(presenceDoc)
		if _, err := docRef.Set(ctx, map[string]interface{}{"online": false}, firestore.MergeAll); err != nil {
			log.Printf("Failed to mark %s offline: %v", user.ID, err)
			continue
		}
		swept++
	}

	return swept, nil
}

func getPresence(ctx context.Context, client *firestore.Client, emailKey string) (types.PresenceStatus, error) {
	var presence types.PresenceStatus

	doc, err := client.Collection(userLocationCollection).Doc(emailKey).
		Collection(presenceSubcollection).Doc(presenceDoc).Get(ctx)
	if err != nil {
		return presence, err
	}
	if err := doc.DataTo(&presence); err != nil {
		return presence, fmt.Errorf("error converting presence doc for %s: %w", emailKey, err)
	}
	return presence, nil
}
