package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
)

// storedMap is the part of a stored map this script needs
type storedMap struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
}

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning for unreadable maps and stale owner index entries...")

	var corruptedKeys []string
	checkedCount := 0

	iter := client.Scan(ctx, 0, "map:*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if strings.HasPrefix(key, "map:owner:") {
			continue
		}
		checkedCount++

		data, err := client.Get(ctx, key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var m storedMap
		if err := json.Unmarshal([]byte(data), &m); err != nil || m.ID == "" {
			fmt.Printf("✗ Unreadable map in %s\n", key)
			corruptedKeys = append(corruptedKeys, key)
		}
	}
	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	// owner index key -> map IDs whose map key has expired or gone
	stale := make(map[string][]string)
	staleCount := 0

	owners := client.Scan(ctx, 0, "map:owner:*", 0).Iterator()
	for owners.Next(ctx) {
		ownerKey := owners.Val()

		ids, err := client.SMembers(ctx, ownerKey).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", ownerKey, err)
			continue
		}

		for _, id := range ids {
			n, err := client.Exists(ctx, "map:"+id).Result()
			if err != nil {
				fmt.Printf("Error checking map %s: %v\n", id, err)
				continue
			}
			if n == 0 {
				stale[ownerKey] = append(stale[ownerKey], id)
				staleCount++
			}
		}
	}
	if err := owners.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d maps, found %d unreadable maps and %d stale index entries\n",
		checkedCount, len(corruptedKeys), staleCount)

	if len(corruptedKeys) == 0 && staleCount == 0 {
		fmt.Println("Nothing to clean up!")
		return
	}

	for _, key := range corruptedKeys {
		fmt.Printf("  - %s\n", key)
	}
	for ownerKey, ids := range stale {
		fmt.Printf("  - %s: %s\n", ownerKey, strings.Join(ids, ", "))
	}

	fmt.Print("\nDo you want to DELETE these entries? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, key := range corruptedKeys {
		if err := client.Del(ctx, key).Err(); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", key, err)
		} else {
			fmt.Printf("Deleted %s\n", key)
		}
	}
	for ownerKey, ids := range stale {
		members := make([]any, len(ids))
		for i, id := range ids {
			members[i] = id
		}
		if err := client.SRem(ctx, ownerKey, members...).Err(); err != nil {
			fmt.Printf("Failed to clean %s: %v\n", ownerKey, err)
		} else {
			fmt.Printf("Removed %d stale entries from %s\n", len(ids), ownerKey)
		}
	}
	fmt.Println("\nCleanup complete!")
}
