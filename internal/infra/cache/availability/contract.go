package availability

import "github.com/go-redis/redis/v8"

// RedisClient команды Redis, используемые кэшем
// Реализуется *redis.Client, *redis.ClusterClient и redis.Pipeliner
type RedisClient = redis.Cmdable
